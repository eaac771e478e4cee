package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/security/jwt"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// OnboardingHandler exposes the wizard of the authenticated user.
type OnboardingHandler struct {
	useCase onboarding.UseCase
}

func NewOnboardingHandler(useCase onboarding.UseCase) *OnboardingHandler {
	return &OnboardingHandler{useCase: useCase}
}

func unauthorized(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
}

// Start opens (or resumes) the onboarding wizard.
// @Summary Start onboarding
// @Tags    onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /onboarding [post]
func (h *OnboardingHandler) Start(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	v, err := h.useCase.Start(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// Get returns the current step.
// @Summary Current onboarding state
// @Tags    onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /onboarding [get]
func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	v, err := h.useCase.Get(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// Abandon drops the session; the stored profile keeps what was entered.
// @Summary Abandon onboarding
// @Tags    onboarding
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /onboarding [delete]
func (h *OnboardingHandler) Abandon(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.useCase.Abandon(c.Context(), uid); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type updateRequest struct {
	Step  int             `json:"step"`
	Patch json.RawMessage `json:"patch" swaggertype:"object"`
}

// Update merges a partial update into the active step.
// @Summary Update the active step
// @Tags    onboarding
// @Accept  json
// @Produce json
// @Param   input body updateRequest true "step number and the fields to change"
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /onboarding/record [patch]
func (h *OnboardingHandler) Update(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || len(req.Patch) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	v, err := h.useCase.Update(c.Context(), uid, wizard.Step(req.Step), req.Patch)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// Next validates the active step and moves forward.
// @Summary Next step
// @Tags    onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.Outcome
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /onboarding/next [post]
func (h *OnboardingHandler) Next(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.useCase.Next(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	if !out.View.Errors.Empty() {
		return presenter.Validation(c, presenter.ValidationResponse{Errors: out.View.Errors, View: out.View})
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Back moves one step back without validation.
// @Summary Previous step
// @Tags    onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.Outcome
// @Router  /onboarding/back [post]
func (h *OnboardingHandler) Back(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.useCase.Back(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Complete finishes onboarding on the last step.
// @Summary Complete onboarding
// @Tags    onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.Outcome
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.useCase.Complete(c.Context(), uid)
	if errors.Is(err, wizard.ErrStepInvalid) {
		return presenter.Validation(c, presenter.ValidationResponse{Errors: out.View.Errors, View: out.View})
	}
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type addSkillRequest struct {
	Skill string `json:"skill"`
	// Proficiency 1-5; omitted means 3.
	Proficiency int `json:"proficiency"`
}

// AddSkill appends a skill on the skills step.
// @Summary Add skill
// @Tags    onboarding
// @Accept  json
// @Produce json
// @Param   input body addSkillRequest true "skill"
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /onboarding/skills [post]
func (h *OnboardingHandler) AddSkill(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	var req addSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	v, err := h.useCase.AddSkill(c.Context(), uid, req.Skill, req.Proficiency)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

type updateSkillRequest struct {
	Field string `json:"field" enums:"skill,proficiency"`
	Value any    `json:"value"`
}

// UpdateSkill rewrites one attribute of a skill.
// @Summary Update skill
// @Tags    onboarding
// @Accept  json
// @Produce json
// @Param   index path int true "skill position"
// @Param   input body updateSkillRequest true "attribute and value"
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /onboarding/skills/{index} [patch]
func (h *OnboardingHandler) UpdateSkill(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid index")
	}
	var req updateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	v, err := h.useCase.UpdateSkill(c.Context(), uid, index, profile.SkillField(req.Field), req.Value)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// RemoveSkill deletes a skill.
// @Summary Remove skill
// @Tags    onboarding
// @Produce json
// @Param   index path int true "skill position"
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /onboarding/skills/{index} [delete]
func (h *OnboardingHandler) RemoveSkill(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid index")
	}
	v, err := h.useCase.RemoveSkill(c.Context(), uid, index)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// UploadResume uploads the resume on the last step. Rejected files come back with
// status 200 and the reason in upload.message, as the step renders it inline.
// @Summary Upload resume
// @Tags    onboarding
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "resume (PDF or DOCX, up to 5MB)"
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /onboarding/resume [post]
func (h *OnboardingHandler) UploadResume(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	f, err := readResume(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	v, err := h.useCase.UploadResume(c.Context(), uid, f)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// RemoveResume removes the uploaded resume.
// @Summary Remove resume
// @Tags    onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.View
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /onboarding/resume [delete]
func (h *OnboardingHandler) RemoveResume(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	v, err := h.useCase.RemoveResume(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}
