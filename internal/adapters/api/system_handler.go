package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weathertracker.app/internal/adapters/infrastructure"
	"weathertracker.app/internal/core/notification"
	"weathertracker.app/internal/ports"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth reports 503 only when a component is unhealthy; degraded still serves
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())
	overall := infrastructure.OverallStatus(results)

	status := http.StatusOK
	if overall == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, HealthResponse{Status: overall, Components: results})
}

// dispatchAlerts handles POST /api/admin/alerts/dispatch
func (s *HTTPServerAdapter) dispatchAlerts(c *gin.Context) {
	ctx := notification.WithTrigger(c.Request.Context(), notification.TriggerManual)
	result, err := s.dispatcher.RunDispatchOnce(ctx)
	if err != nil {
		s.handleError(c, err)
		return
	}
	slog.Info("Manual dispatch finished",
		"user_id", currentUserID(c),
		"run_id", result.RunID,
		"sent", result.Sent,
		"failed", result.Failed)
	c.JSON(http.StatusOK, result)
}
