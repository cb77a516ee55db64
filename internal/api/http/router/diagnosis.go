package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mizutanik/kokoro_backend/internal/api/http/handler"
)

func (r *Router) registerDiagnosisRoutes(
	api fiber.Router,
	h *handler.DiagnosisHandler,
	authRequired fiber.Handler,
) {
	api.Get("/questions", h.Questions, authRequired)

	diag := api.Group("/diagnosis", authRequired)
	diag.Post("/start", h.Start)
	diag.Post("/answer", h.Answer)
	diag.Post("/complete", h.Complete)
	diag.Get("/session", h.Session)
}
