package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"supportbot.app/hub/internal/http/dto"
	"supportbot.app/hub/internal/service"
	"supportbot.app/hub/internal/stats"
)

const dateLayout = "2006-01-02"

var errBadQuery = errors.New("bad query")

type DashboardHandler struct {
	dashboard service.DashboardService
	timezone  *time.Location
}

// NewDashboardHandler reads YYYY-MM-DD query dates as midnight in timezone.
func NewDashboardHandler(dashboard service.DashboardService, timezone *time.Location) *DashboardHandler {
	if timezone == nil {
		timezone = time.UTC
	}
	return &DashboardHandler{dashboard: dashboard, timezone: timezone}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.dashboard.Snapshot(ctx)
	if err != nil {
		writeServiceError(c, "failed to load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(snapshot))
}

func (h *DashboardHandler) Questions(c *gin.Context) {
	ctx := c.Request.Context()

	dateRange, err := h.parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit := stats.UnitDays
	if raw := c.Query("unit"); raw != "" {
		if unit, err = stats.ParseUnit(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	series, err := h.dashboard.Questions(ctx, service.QuestionQuery{
		Channels: c.QueryArray("channel"),
		Range:    dateRange,
		Unit:     unit,
	})
	if err != nil {
		writeServiceError(c, "failed to load questions", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionSeriesResponse(unit, series))
}

func (h *DashboardHandler) Contributors(c *gin.Context) {
	ctx := c.Request.Context()

	dateRange, err := h.parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staffOnly := false
	if raw := c.Query("staff"); raw != "" {
		if staffOnly, err = strconv.ParseBool(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "staff must be a boolean"})
			return
		}
	}

	entries, err := h.dashboard.Leaderboard(ctx, service.LeaderboardQuery{
		Channels:  c.QueryArray("channel"),
		Range:     dateRange,
		StaffOnly: staffOnly,
	})
	if err != nil {
		writeServiceError(c, "failed to load contributors", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaderboardResponse(staffOnly, entries))
}

// parseRange returns nil when neither start nor end is given.
func (h *DashboardHandler) parseRange(c *gin.Context) (*stats.DateRange, error) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" && rawEnd == "" {
		return nil, nil
	}
	if rawStart == "" || rawEnd == "" {
		return nil, fmt.Errorf("%w: start and end must be given together", errBadQuery)
	}

	start, err := time.ParseInLocation(dateLayout, rawStart, h.timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: start must be YYYY-MM-DD", errBadQuery)
	}
	end, err := time.ParseInLocation(dateLayout, rawEnd, h.timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: end must be YYYY-MM-DD", errBadQuery)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end is before start", errBadQuery)
	}

	return &stats.DateRange{Start: start, End: end}, nil
}

func writeServiceError(c *gin.Context, msg string, err error) {
	ctx := c.Request.Context()
	if errors.Is(err, service.ErrUpstream) {
		slog.WarnContext(ctx, msg, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}
	slog.ErrorContext(ctx, msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
