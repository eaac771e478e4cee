package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/resume"
	"github.com/artem13815/microbridge/pkg/security/jwt"
)

type ResumesHandler struct {
	useCase resume.UseCase
}

func NewResumesHandler(useCase resume.UseCase) *ResumesHandler {
	return &ResumesHandler{useCase: useCase}
}

// List возвращает список резюме пользователя.
// @Summary Список резюме
// @Tags    Резюме
// @Produce json
// @Param   limit  query int false "page size (max 200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if items == nil {
		items = []resume.Resume{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Download скачивает исходный файл резюме.
// @Summary Скачать файл резюме
// @Tags    Резюме
// @Produce application/octet-stream
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/file [get]
func (h *ResumesHandler) Download(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	meta, err := h.useCase.Get(c.Context(), uid, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return c.Download(meta.StorageURI, meta.Filename)
}

// Skills предлагает навыки, найденные в тексте резюме.
// @Summary Навыки из резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {array} string
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/skills [get]
func (h *ResumesHandler) Skills(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	skills, err := h.useCase.Skills(c.Context(), uid, id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, skills)
}
