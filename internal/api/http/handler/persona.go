package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mizutanik/kokoro_backend/internal/service/persona"
	pasetotoken "github.com/mizutanik/kokoro_backend/pkg/paseto"
)

type PersonaHandler struct {
	svc persona.Service
}

func NewPersonaHandler(svc persona.Service) *PersonaHandler {
	return &PersonaHandler{svc: svc}
}

// GET /personas
func (h *PersonaHandler) List(c fiber.Ctx) error {
	personas, err := h.svc.List(c.Context())
	if err != nil {
		return internalError(c)
	}
	return ok(c, personas)
}

// GET /personas/:id
func (h *PersonaHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid persona id")
	}

	detail, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, persona.ErrNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}

	return ok(c, detail)
}

// GET /personas/recommendations
func (h *PersonaHandler) Recommendations(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	recommendations, err := h.svc.Recommend(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, persona.ErrNoCompletedDiagnosis) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}

	return ok(c, recommendations)
}
