package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mizutanik/kokoro_backend/internal/api/http/handler"
)

func (r *Router) registerPersonaRoutes(
	api fiber.Router,
	h *handler.PersonaHandler,
	authRequired fiber.Handler,
) {
	personas := api.Group("/personas", authRequired)
	personas.Get("/", h.List)
	personas.Get("/recommendations", h.Recommendations)
	personas.Get("/:id", h.GetByID)
}
