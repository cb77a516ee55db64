package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mizutanik/kokoro_backend/internal/catalog"
	"github.com/mizutanik/kokoro_backend/internal/service/diagnosis"
	pasetotoken "github.com/mizutanik/kokoro_backend/pkg/paseto"
)

type DiagnosisHandler struct {
	svc diagnosis.Service
	cat *catalog.Catalog
}

func NewDiagnosisHandler(svc diagnosis.Service, cat *catalog.Catalog) *DiagnosisHandler {
	return &DiagnosisHandler{svc: svc, cat: cat}
}

// POST /diagnosis/start
func (h *DiagnosisHandler) Start(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	session, err := h.svc.Start(c.Context(), claims.UserID)
	if err != nil {
		return internalError(c)
	}

	return created(c, fiber.Map{"testId": session.ID})
}

// POST /diagnosis/answer
func (h *DiagnosisHandler) Answer(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		TestID     string `json:"testId"`
		QuestionID string `json:"questionId"`
		Value      int    `json:"value"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	testID, err := uuid.Parse(body.TestID)
	if err != nil {
		return badRequest(c, "invalid test id")
	}

	err = h.svc.SaveAnswer(c.Context(), claims.UserID, testID, body.QuestionID, body.Value)
	switch {
	case err == nil:
		return noContent(c)
	case errors.Is(err, diagnosis.ErrInvalidScore),
		errors.Is(err, diagnosis.ErrUnknownQuestion):
		return badRequest(c, err.Error())
	case errors.Is(err, diagnosis.ErrSessionNotFound),
		errors.Is(err, diagnosis.ErrForbidden):
		return notFound(c, diagnosis.ErrSessionNotFound.Error())
	case errors.Is(err, diagnosis.ErrSessionCompleted):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /diagnosis/complete
func (h *DiagnosisHandler) Complete(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		TestID string `json:"testId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	testID, err := uuid.Parse(body.TestID)
	if err != nil {
		return badRequest(c, "invalid test id")
	}

	result, err := h.svc.Complete(c.Context(), claims.UserID, testID)
	switch {
	case err == nil:
		return ok(c, result)
	case errors.Is(err, diagnosis.ErrInsufficientAnswers):
		return badRequest(c, err.Error())
	case errors.Is(err, diagnosis.ErrSessionNotFound),
		errors.Is(err, diagnosis.ErrForbidden):
		return notFound(c, diagnosis.ErrSessionNotFound.Error())
	default:
		return internalError(c)
	}
}

// GET /diagnosis/session
func (h *DiagnosisHandler) Session(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	state, err := h.svc.ActiveSession(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, diagnosis.ErrNoActiveSession) {
			return ok(c, nil)
		}
		return internalError(c)
	}

	return ok(c, state)
}

// GET /questions
//
// Returns the localized catalog plus the caller's in-progress session,
// so a client can resume where it left off with one request.
func (h *DiagnosisHandler) Questions(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	locale := h.cat.Normalize(c.Query("locale"))

	var session *diagnosis.SessionState
	state, err := h.svc.ActiveSession(c.Context(), claims.UserID)
	switch {
	case err == nil:
		session = state
	case errors.Is(err, diagnosis.ErrNoActiveSession):
		// no session yet, questions alone
	default:
		return internalError(c)
	}

	return ok(c, fiber.Map{
		"locale":    locale,
		"questions": h.cat.Questions(locale),
		"meta":      h.cat.Meta(),
		"session":   session,
	})
}
