package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvbuilder/api/http/handlers"
)

// Handlers bundles everything Register wires.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Form   *handlers.FormHandler
	Export *handlers.ExportHandler
}

// Register wires all HTTP routes onto given Fiber app. requireAuth guards
// everything except health, registration and login.
func Register(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", requireAuth, h.Auth.Logout)

	u := v1.Group("/users", requireAuth)
	u.Get("/", h.Users.List)
	u.Get("/details", h.Users.Details)
	u.Delete("/delete-account", h.Users.DeleteAccount)
	u.Get("/cv", h.Users.GetCV)
	u.Put("/update-cv", h.Users.UpdateCV)
	u.Get("/cv/export", h.Export.Export)

	u.Get("/cv/form", h.Form.Get)
	u.Put("/cv/form", h.Form.Submit)

	d := u.Group("/cv/draft")
	d.Post("/", h.Form.OpenDraft)
	d.Get("/", h.Form.GetDraft)
	d.Delete("/", h.Form.DiscardDraft)
	d.Post("/submit", h.Form.SubmitDraft)
	d.Patch("/fields", h.Form.SetFields)
	d.Post("/sections/:section/entries", h.Form.AppendEntry)
	d.Delete("/sections/:section/entries/last", h.Form.RemoveLastEntry)
	d.Delete("/sections/:section/entries/:index", h.Form.RemoveEntry)
	d.Patch("/sections/:section/entries/:index", h.Form.UpdateEntry)
	d.Post("/lists/:list/items", h.Form.AppendItem)
	d.Delete("/lists/:list/items/:index", h.Form.RemoveItem)
	d.Patch("/lists/:list/items/:index", h.Form.UpdateItem)
}
