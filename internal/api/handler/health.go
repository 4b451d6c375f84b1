package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/useractivity/analytics/internal/core/ports"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe. The registry
// is in-process, so readiness cannot fail; it reports current registry counts
// for operability.
type ReadinessHandler struct {
	registry ports.AnalyticsRepository
}

func NewReadinessHandler(registry ports.AnalyticsRepository) *ReadinessHandler {
	return &ReadinessHandler{registry: registry}
}

type registryStatus struct {
	Users    int `json:"users"`
	Sessions int `json:"sessions"`
}

type readinessResponse struct {
	Status   string         `json:"status"`
	Registry registryStatus `json:"registry"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	stats := h.registry.Stats(c.Request().Context())

	return c.JSON(http.StatusOK, readinessResponse{
		Status: "ok",
		Registry: registryStatus{
			Users:    stats.Users,
			Sessions: stats.Sessions,
		},
	})
}
