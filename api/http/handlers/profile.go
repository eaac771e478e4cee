package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/security/jwt"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// ProfileHandler serves the profile page, where the wizard sections are edited one at
// a time after onboarding.
type ProfileHandler struct {
	useCase onboarding.ProfileUseCase
}

func NewProfileHandler(useCase onboarding.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

// Get returns the stored profile split into sections.
// @Summary Profile page
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.ProfilePage
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := h.useCase.Profile(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, page)
}

// SaveSection validates and saves one section.
// @Summary Save profile section
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   step path int true "step number (1-7)"
// @Param   input body object true "fields of the step"
// @Security BearerAuth
// @Success 200 {object} onboarding.ProfilePage
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /profile/sections/{step} [put]
func (h *ProfileHandler) SaveSection(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid step")
	}
	page, err := h.useCase.SaveSection(c.Context(), uid, wizard.Step(step), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, page)
}
