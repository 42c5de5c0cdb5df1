package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"supportbot.app/hub/common/logger"
	"supportbot.app/hub/internal/http/dto"
	"supportbot.app/hub/internal/mapper"
	"supportbot.app/hub/internal/service"
)

const (
	sourceGitLab = "gitlab"
	// maxBodyBytes caps the webhook payload read into memory.
	maxBodyBytes = 1 << 20
)

type GitLabWebhookHandler struct {
	eventIngest service.EventIngestService
	mapper      mapper.EventMapper
}

func NewGitLabWebhookHandler(eventIngest service.EventIngestService, mapper mapper.EventMapper) *GitLabWebhookHandler {
	return &GitLabWebhookHandler{
		eventIngest: eventIngest,
		mapper:      mapper,
	}
}

func (h *GitLabWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	headers := make(map[string]string, len(c.Request.Header))
	for key, values := range c.Request.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	deliveryID := headers["X-Gitlab-Event-Uuid"]
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DeliveryID: logger.Ptr(deliveryID),
		Component:  "hub.http.webhook.gitlab",
	})

	event, err := h.mapper.Map(ctx, body, headers)
	if errors.Is(err, mapper.ErrUnsupportedEvent) {
		slog.DebugContext(ctx, "ignoring gitlab event", "reason", err)
		c.JSON(http.StatusOK, dto.WebhookResponse{Status: "ok", Message: "event type not supported"})
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "invalid gitlab payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	params := service.EventIngestParams{
		Source:          sourceGitLab,
		EventType:       event.Type,
		DeliveryID:      deliveryID,
		ExternalEventID: event.ExternalID,
		Payload:         event.Payload,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		params.TraceID = logger.Ptr(sc.TraceID().String())
	}

	result, err := h.eventIngest.Ingest(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "failed to ingest gitlab event", "error", err, "event_type", event.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	slog.InfoContext(ctx, "gitlab webhook accepted",
		"event_type", event.Type,
		"event_id", result.EventID,
		"enqueued", result.Enqueued,
		"duplicated", result.Duplicated)

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Status:     "ok",
		EventID:    result.EventID,
		Enqueued:   result.Enqueued,
		Duplicated: result.Duplicated,
	})
}
