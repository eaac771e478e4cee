package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationResponse is returned with 422: the field errors and, when there is one,
// the state the client should render next to them.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Details []string          `json:"details,omitempty"`
	View    any               `json:"view,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func Validation(c *fiber.Ctx, resp ValidationResponse) error {
	if resp.Message == "" {
		resp.Message = "validation failed"
	}
	return JSON(c, fiber.StatusUnprocessableEntity, resp)
}
