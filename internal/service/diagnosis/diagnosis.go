// Package diagnosis orchestrates the MBTI test lifecycle: starting
// sessions, recording answers, scoring, and publishing completion
// events.
package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mizutanik/kokoro_backend/internal/catalog"
	"github.com/mizutanik/kokoro_backend/internal/mbti"
	"github.com/mizutanik/kokoro_backend/internal/store"
	"github.com/mizutanik/kokoro_backend/pkg/reqctx"
)

// EventSubjectPrefix is the NATS subject prefix for completion events.
// The full subject is "<prefix>.<testID>".
const EventSubjectPrefix = "kokoro.diagnosis.completed"

// CompletedEvent is published when a session finishes scoring.
type CompletedEvent struct {
	TestID     uuid.UUID `json:"testId"`
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email,omitempty"`
	MBTIType   mbti.Code `json:"mbtiType"`
	Confidence int       `json:"confidence"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher is the subset of the NATS connection the service needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// SessionState is the in-progress view returned to clients resuming a
// test.
type SessionState struct {
	TestID   uuid.UUID      `json:"testId"`
	Answers  map[string]int `json:"answers"`
	Progress int            `json:"progress"`
	Total    int            `json:"total"`
}

// Service drives diagnosis sessions from start to scored completion.
type Service interface {
	// Start opens a new session for the user.
	Start(ctx context.Context, userID uuid.UUID) (*store.TestSession, error)
	// SaveAnswer records or overwrites one answer on an open session.
	SaveAnswer(ctx context.Context, userID, sessionID uuid.UUID, questionID string, value int) error
	// Complete scores the session and persists the result. Completing
	// an already-completed session returns the stored result.
	Complete(ctx context.Context, userID, sessionID uuid.UUID) (*mbti.Result, error)
	// ActiveSession returns the user's current in-progress session.
	ActiveSession(ctx context.Context, userID uuid.UUID) (*SessionState, error)
}

type service struct {
	store     store.DiagnosisStore
	catalog   *catalog.Catalog
	publisher Publisher
	logger    *slog.Logger
}

func New(st store.DiagnosisStore, cat *catalog.Catalog, pub Publisher, logger *slog.Logger) Service {
	return &service{store: st, catalog: cat, publisher: pub, logger: logger}
}

func (s *service) Start(ctx context.Context, userID uuid.UUID) (*store.TestSession, error) {
	session, err := s.store.CreateSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("starting diagnosis: %w", err)
	}
	s.logger.InfoContext(ctx, "diagnosis session started",
		"test_id", session.ID, "user_id", userID)
	return session, nil
}

func (s *service) SaveAnswer(ctx context.Context, userID, sessionID uuid.UUID, questionID string, value int) error {
	if value < mbti.MinValue || value > mbti.MaxValue {
		return ErrInvalidScore
	}
	if !s.catalog.Has(questionID) {
		return ErrUnknownQuestion
	}

	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status == store.StatusCompleted {
		return ErrSessionCompleted
	}

	if err := s.store.UpsertAnswer(ctx, sessionID, questionID, value); err != nil {
		return fmt.Errorf("saving answer: %w", err)
	}
	return nil
}

func (s *service) Complete(ctx context.Context, userID, sessionID uuid.UUID) (*mbti.Result, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == store.StatusCompleted {
		return storedResult(session), nil
	}

	answers, err := s.store.FetchAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, ErrInsufficientAnswers
	}

	scored := make([]mbti.Answer, len(answers))
	for i, a := range answers {
		scored[i] = mbti.Answer{QuestionID: a.QuestionID, Value: a.Value}
	}
	result, err := mbti.Score(scored, s.catalog.AxisOf)
	if err != nil {
		return nil, fmt.Errorf("scoring session: %w", err)
	}

	completedAt := time.Now().UTC()
	err = s.store.CompleteSession(ctx, sessionID, store.SessionResult{
		DeterminedType: result.Type,
		Scores:         result.Scores,
		Confidence:     result.Confidence,
		CompletedAt:    completedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting result: %w", err)
	}

	s.logger.InfoContext(ctx, "diagnosis session completed",
		"test_id", sessionID, "user_id", userID,
		"mbti_type", result.Type, "confidence", result.Confidence)
	s.publishCompleted(ctx, session, result, completedAt)
	return &result, nil
}

func (s *service) ActiveSession(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	session, err := s.store.FetchActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("loading active session: %w", err)
	}

	answers, err := s.store.FetchAnswers(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	state := &SessionState{
		TestID:  session.ID,
		Answers: make(map[string]int, len(answers)),
		Total:   s.catalog.Size(),
	}
	for _, a := range answers {
		state.Answers[a.QuestionID] = a.Value
	}
	state.Progress = len(state.Answers)
	return state, nil
}

func (s *service) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*store.TestSession, error) {
	session, err := s.store.FetchSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

// publishCompleted emits the completion event. Delivery is best effort;
// a publish failure never fails the request.
func (s *service) publishCompleted(ctx context.Context, session *store.TestSession, result mbti.Result, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := CompletedEvent{
		TestID:     session.ID,
		UserID:     session.UserID,
		MBTIType:   result.Type,
		Confidence: result.Confidence,
		OccurredAt: at,
	}
	if claims := reqctx.ClaimsFromContext(ctx); claims != nil {
		event.Email = claims.GetSubject()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WarnContext(ctx, "marshaling completion event failed", "error", err)
		return
	}
	subject := fmt.Sprintf("%s.%s", EventSubjectPrefix, session.ID)
	if err := s.publisher.Publish(subject, payload); err != nil {
		s.logger.WarnContext(ctx, "publishing completion event failed",
			"subject", subject, "error", err)
	}
}

func storedResult(session *store.TestSession) *mbti.Result {
	result := &mbti.Result{}
	if session.DeterminedType != nil {
		result.Type = *session.DeterminedType
	}
	if session.Scores != nil {
		result.Scores = *session.Scores
	}
	if session.Confidence != nil {
		result.Confidence = *session.Confidence
	}
	return result
}
