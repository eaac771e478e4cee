package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/gamification"
	"github.com/artem13815/microbridge/pkg/security/jwt"
)

type ProgressHandler struct {
	useCase gamification.UseCase
}

func NewProgressHandler(useCase gamification.UseCase) *ProgressHandler {
	return &ProgressHandler{useCase: useCase}
}

// Get returns XP, level and achievements.
// @Summary Gamification progress
// @Tags    progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gamification.Progress
// @Router  /progress [get]
func (h *ProgressHandler) Get(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	p, err := h.useCase.Progress(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}
