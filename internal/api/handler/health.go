package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	storage ports.KeyValueStore
	status  ports.StatusSource
}

func NewHealthHandler(storage ports.KeyValueStore, status ports.StatusSource) *HealthHandler {
	return &HealthHandler{storage: storage, status: status}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

const readinessTimeout = 3 * time.Second

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. Only storage gates readiness. The
// backend state is informational: offline still serves fallback data.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	backend := h.status.Current()
	res := readinessResponse{
		Status: "ok",
		Dependencies: map[string]dependencyStatus{
			"storage": {Status: "ok"},
			"backend": {Status: string(backend.State), Error: backend.Error},
		},
	}

	code := http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		res.Status = "degraded"
		res.Dependencies["storage"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, res)
}
