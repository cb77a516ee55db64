// Package store defines the persistence contracts for diagnosis
// sessions and personas, plus the Postgres implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mizutanik/kokoro_backend/internal/mbti"
)

var ErrNotFound = errors.New("record not found")

// SessionStatus is the lifecycle state of a diagnosis session.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
)

// TestSession is one user's diagnosis run. Result fields are nil until
// the session completes.
type TestSession struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Status         SessionStatus
	StartedAt      time.Time
	CompletedAt    *time.Time
	DeterminedType *mbti.Code
	Scores         *mbti.Scores
	Confidence     *int
}

// Answer is a stored response to one question.
type Answer struct {
	QuestionID string
	Value      int
}

// SessionResult carries everything written when a session completes.
type SessionResult struct {
	DeterminedType mbti.Code
	Scores         mbti.Scores
	Confidence     int
	CompletedAt    time.Time
}

// DiagnosisStore persists sessions and their answers.
type DiagnosisStore interface {
	CreateSession(ctx context.Context, userID uuid.UUID) (*TestSession, error)
	FetchSession(ctx context.Context, id uuid.UUID) (*TestSession, error)
	// FetchActiveSession returns the user's most recently started
	// in-progress session, or ErrNotFound.
	FetchActiveSession(ctx context.Context, userID uuid.UUID) (*TestSession, error)
	// FetchLatestCompleted returns the user's most recently completed
	// session, or ErrNotFound.
	FetchLatestCompleted(ctx context.Context, userID uuid.UUID) (*TestSession, error)
	// UpsertAnswer inserts or overwrites the answer for a question
	// within a session.
	UpsertAnswer(ctx context.Context, sessionID uuid.UUID, questionID string, value int) error
	FetchAnswers(ctx context.Context, sessionID uuid.UUID) ([]Answer, error)
	// CompleteSession transitions the session to completed and stores
	// the result.
	CompleteSession(ctx context.Context, sessionID uuid.UUID, result SessionResult) error
}

// Persona is a recommendable character profile. MBTIType is empty for
// personas that have not been typed yet.
type Persona struct {
	ID          uuid.UUID
	Name        string
	MBTIType    string
	Description string
}

// PersonaStore persists the persona roster.
type PersonaStore interface {
	ListPersonas(ctx context.Context) ([]Persona, error)
	GetPersona(ctx context.Context, id uuid.UUID) (*Persona, error)
	UpsertPersona(ctx context.Context, p Persona) error
}
