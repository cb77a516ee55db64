package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mizutanik/kokoro_backend/internal/mbti"
	"github.com/mizutanik/kokoro_backend/pkg/database"
)

// Postgres implements DiagnosisStore and PersonaStore on top of the
// shared database handle.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db.Conn()}
}

// EnsureSchema creates the tables and indexes if they do not exist.
// It is safe to run on every startup.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS mbti_tests (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			status TEXT NOT NULL DEFAULT 'in_progress',
			started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			completed_at TIMESTAMPTZ,
			determined_type TEXT,
			score_ei INT,
			score_sn INT,
			score_tf INT,
			score_jp INT,
			confidence INT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mbti_tests_user
			ON mbti_tests (user_id, started_at DESC)`,
		`CREATE TABLE IF NOT EXISTS mbti_answers (
			test_id UUID NOT NULL REFERENCES mbti_tests(id) ON DELETE CASCADE,
			question_id TEXT NOT NULL,
			value INT NOT NULL CHECK (value BETWEEN 1 AND 7),
			answered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (test_id, question_id)
		)`,
		`CREATE TABLE IF NOT EXISTS personas (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			mbti_type TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

func (p *Postgres) CreateSession(ctx context.Context, userID uuid.UUID) (*TestSession, error) {
	session := &TestSession{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusInProgress,
		StartedAt: time.Now().UTC(),
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO mbti_tests (id, user_id, status, started_at) VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.Status, session.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

const sessionColumns = `id, user_id, status, started_at, completed_at,
	determined_type, score_ei, score_sn, score_tf, score_jp, confidence`

func (p *Postgres) FetchSession(ctx context.Context, id uuid.UUID) (*TestSession, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM mbti_tests WHERE id = $1`, id)
	return scanSession(row)
}

func (p *Postgres) FetchActiveSession(ctx context.Context, userID uuid.UUID) (*TestSession, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM mbti_tests
		 WHERE user_id = $1 AND status = $2
		 ORDER BY started_at DESC LIMIT 1`,
		userID, StatusInProgress)
	return scanSession(row)
}

func (p *Postgres) FetchLatestCompleted(ctx context.Context, userID uuid.UUID) (*TestSession, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM mbti_tests
		 WHERE user_id = $1 AND status = $2
		 ORDER BY completed_at DESC LIMIT 1`,
		userID, StatusCompleted)
	return scanSession(row)
}

func scanSession(row *sql.Row) (*TestSession, error) {
	var (
		s           TestSession
		completedAt sql.NullTime
		mbtiType    sql.NullString
		ei, sn      sql.NullInt64
		tf, jp      sql.NullInt64
		confidence  sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Status, &s.StartedAt,
		&completedAt, &mbtiType, &ei, &sn, &tf, &jp, &confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}
	if mbtiType.Valid && mbtiType.String != "" {
		code := mbti.Code(mbtiType.String)
		s.DeterminedType = &code
	}
	if confidence.Valid {
		c := int(confidence.Int64)
		s.Confidence = &c
	}
	if ei.Valid {
		s.Scores = &mbti.Scores{
			EI: int(ei.Int64),
			SN: int(sn.Int64),
			TF: int(tf.Int64),
			JP: int(jp.Int64),
		}
	}
	return &s, nil
}

func (p *Postgres) UpsertAnswer(ctx context.Context, sessionID uuid.UUID, questionID string, value int) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO mbti_answers (test_id, question_id, value, answered_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (test_id, question_id)
		 DO UPDATE SET value = EXCLUDED.value, answered_at = now()`,
		sessionID, questionID, value)
	if err != nil {
		return fmt.Errorf("upserting answer: %w", err)
	}
	return nil
}

func (p *Postgres) FetchAnswers(ctx context.Context, sessionID uuid.UUID) ([]Answer, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT question_id, value FROM mbti_answers
		 WHERE test_id = $1 ORDER BY question_id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetching answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.QuestionID, &a.Value); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (p *Postgres) CompleteSession(ctx context.Context, sessionID uuid.UUID, result SessionResult) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE mbti_tests
		 SET status = $2, completed_at = $3, determined_type = $4,
		     score_ei = $5, score_sn = $6, score_tf = $7, score_jp = $8,
		     confidence = $9
		 WHERE id = $1`,
		sessionID, StatusCompleted, result.CompletedAt, result.DeterminedType,
		result.Scores.EI, result.Scores.SN, result.Scores.TF, result.Scores.JP,
		result.Confidence)
	if err != nil {
		return fmt.Errorf("completing session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListPersonas(ctx context.Context) ([]Persona, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, mbti_type, description FROM personas ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing personas: %w", err)
	}
	defer rows.Close()

	var personas []Persona
	for rows.Next() {
		var p Persona
		if err := rows.Scan(&p.ID, &p.Name, &p.MBTIType, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

func (p *Postgres) GetPersona(ctx context.Context, id uuid.UUID) (*Persona, error) {
	var persona Persona
	err := p.db.QueryRowContext(ctx,
		`SELECT id, name, mbti_type, description FROM personas WHERE id = $1`, id).
		Scan(&persona.ID, &persona.Name, &persona.MBTIType, &persona.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching persona: %w", err)
	}
	return &persona, nil
}

func (p *Postgres) UpsertPersona(ctx context.Context, persona Persona) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO personas (id, name, mbti_type, description)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   mbti_type = EXCLUDED.mbti_type,
		   description = EXCLUDED.description`,
		persona.ID, persona.Name, persona.MBTIType, persona.Description)
	if err != nil {
		return fmt.Errorf("upserting persona: %w", err)
	}
	return nil
}

var (
	_ DiagnosisStore = (*Postgres)(nil)
	_ PersonaStore   = (*Postgres)(nil)
)
