package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/security/jwt"
	"github.com/artem13815/microbridge/pkg/settings"
)

type SettingsHandler struct {
	useCase settings.UseCase
}

func NewSettingsHandler(useCase settings.UseCase) *SettingsHandler {
	return &SettingsHandler{useCase: useCase}
}

// Get returns the account settings, defaults included.
// @Summary Account settings
// @Tags    settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Router  /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	st, err := h.useCase.Get(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// Update merges a partial settings document.
// @Summary Update account settings
// @Tags    settings
// @Accept  json
// @Produce json
// @Param   input body object true "partial settings"
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	st, err := h.useCase.Update(c.Context(), uid, c.Body())
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}
