package api

import (
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Post("/chat", h.Chat)
	api.Post("/clear-database", h.ClearDatabase)

	// Unmatched routes funnel into the NotFound envelope.
	app.Use(func(c fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
