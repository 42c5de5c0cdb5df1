package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"supportbot.app/hub/internal/http/dto"
	"supportbot.app/hub/internal/service"
)

type DiscussionHandler struct {
	discussions service.DiscussionService
}

func NewDiscussionHandler(discussions service.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions}
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discussion, err := h.discussions.CreateFromThread(ctx, service.CreateDiscussionParams{
		ThreadID:   req.ThreadID,
		Repository: req.Repository,
		ActorID:    req.ActorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownRepository), errors.Is(err, service.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotThread):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTrackerUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			writeServiceError(c, "failed to create discussion", err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDiscussionResponse(discussion))
}
