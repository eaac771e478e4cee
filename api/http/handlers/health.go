package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/health"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} healthResponse
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready reports every configured dependency; any failed check answers 503.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	checks := h.svc.Report(ctx)
	for _, result := range checks {
		if result != "ok" {
			return presenter.JSON(c, http.StatusServiceUnavailable, healthResponse{Status: "not_ready", Checks: checks})
		}
	}
	return presenter.JSON(c, http.StatusOK, healthResponse{Status: "ready", Checks: checks})
}
