package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Health     *handlers.HealthHandler
	Registry   *handlers.RegistryHandler
	Onboarding *handlers.OnboardingHandler
	Profile    *handlers.ProfileHandler
	Resumes    *handlers.ResumesHandler
	Settings   *handlers.SettingsHandler
	Progress   *handlers.ProgressHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	// Option sets and step table, public so that clients can render forms before login
	v1.Get("/registry", h.Registry.All)
	v1.Get("/registry/:field", h.Registry.Field)
	v1.Get("/steps", h.Registry.Steps)

	ob := v1.Group("/onboarding", authMW)
	ob.Post("/", h.Onboarding.Start)
	ob.Get("/", h.Onboarding.Get)
	ob.Delete("/", h.Onboarding.Abandon)
	ob.Patch("/record", h.Onboarding.Update)
	ob.Post("/next", h.Onboarding.Next)
	ob.Post("/back", h.Onboarding.Back)
	ob.Post("/complete", h.Onboarding.Complete)
	ob.Post("/skills", h.Onboarding.AddSkill)
	ob.Patch("/skills/:index", h.Onboarding.UpdateSkill)
	ob.Delete("/skills/:index", h.Onboarding.RemoveSkill)
	ob.Post("/resume", h.Onboarding.UploadResume)
	ob.Delete("/resume", h.Onboarding.RemoveResume)

	pg := v1.Group("/profile", authMW)
	pg.Get("/", h.Profile.Get)
	pg.Put("/sections/:step", h.Profile.SaveSection)

	rs := v1.Group("/resumes", authMW)
	rs.Get("/", h.Resumes.List)
	rs.Get("/:id/file", h.Resumes.Download)
	rs.Get("/:id/skills", h.Resumes.Skills)

	v1.Get("/settings", authMW, h.Settings.Get)
	v1.Put("/settings", authMW, h.Settings.Update)
	v1.Get("/progress", authMW, h.Progress.Get)
}
