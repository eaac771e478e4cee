package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/resume"
	"github.com/artem13815/microbridge/pkg/settings"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// fail maps domain errors to HTTP responses.
func fail(c *fiber.Ctx, err error) error {
	var (
		optErr     *profile.OptionError
		sectionErr *onboarding.SectionError
		settingErr *settings.ValidationError
	)
	switch {
	case errors.As(err, &sectionErr):
		return presenter.Validation(c, presenter.ValidationResponse{Errors: sectionErr.Errors})
	case errors.As(err, &settingErr):
		return presenter.Validation(c, presenter.ValidationResponse{Message: "invalid settings", Details: settingErr.Details})
	case errors.As(err, &optErr):
		return presenter.Validation(c, presenter.ValidationResponse{
			Message: err.Error(),
			Errors:  map[string]string{optErr.Field: "Select a valid option"},
		})

	case errors.Is(err, onboarding.ErrNoSession),
		errors.Is(err, onboarding.ErrProfileNotFound),
		errors.Is(err, onboarding.ErrNoResume),
		errors.Is(err, resume.ErrNotFound),
		errors.Is(err, settings.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, err.Error())

	case errors.Is(err, onboarding.ErrStepNotActive),
		errors.Is(err, wizard.ErrNotFinalStep),
		errors.Is(err, wizard.ErrAlreadyCompleted):
		return presenter.Error(c, http.StatusConflict, err.Error())

	case errors.Is(err, profile.ErrUnknownStep),
		errors.Is(err, profile.ErrMalformedPatch),
		errors.Is(err, profile.ErrUnknownSkillField):
		return presenter.Error(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, profile.ErrDuplicateSkill),
		errors.Is(err, profile.ErrEmptySkill),
		errors.Is(err, profile.ErrInvalidProficiency),
		errors.Is(err, profile.ErrSkillIndex),
		errors.Is(err, profile.ErrInvalidSkillValue):
		return presenter.Validation(c, presenter.ValidationResponse{Message: err.Error()})

	case errors.Is(err, wizard.ErrUnsupportedType):
		return presenter.Error(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, wizard.ErrFileTooLarge):
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	}
	return presenter.Error(c, http.StatusInternalServerError, "internal error")
}
