package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/presenter"
	"github.com/artem13815/microbridge/pkg/registry"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// RegistryHandler publishes the option sets and the step table for clients.
type RegistryHandler struct{}

func NewRegistryHandler() *RegistryHandler { return &RegistryHandler{} }

// All returns every option set.
// @Summary Field registry
// @Tags    registry
// @Produce json
// @Success 200 {object} map[string][]registry.Option
// @Router  /registry [get]
func (h *RegistryHandler) All(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, registry.All())
}

// Field returns the options of one field. Majors can be grouped by category with
// ?grouped=true.
// @Summary Options of a field
// @Tags    registry
// @Produce json
// @Param   field path string true "field name, e.g. major"
// @Param   grouped query bool false "group majors by category"
// @Success 200 {array} registry.Option
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /registry/{field} [get]
func (h *RegistryHandler) Field(c *fiber.Ctx) error {
	field := c.Params("field")
	if field == registry.FieldMajor && c.QueryBool("grouped") {
		return presenter.JSON(c, http.StatusOK, registry.MajorsByCategory())
	}
	opts, ok := registry.Options(field)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, "unknown field")
	}
	return presenter.JSON(c, http.StatusOK, opts)
}

// Steps returns the wizard steps in order.
// @Summary Wizard steps
// @Tags    registry
// @Produce json
// @Success 200 {array} wizard.Definition
// @Router  /steps [get]
func (h *RegistryHandler) Steps(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, wizard.Steps())
}
