package diagnosis

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mizutanik/kokoro_backend/internal/catalog"
	"github.com/mizutanik/kokoro_backend/internal/store"
)

type fakeStore struct {
	sessions  map[uuid.UUID]*store.TestSession
	answers   map[uuid.UUID]map[string]int
	completes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[uuid.UUID]*store.TestSession),
		answers:  make(map[uuid.UUID]map[string]int),
	}
}

func (f *fakeStore) CreateSession(_ context.Context, userID uuid.UUID) (*store.TestSession, error) {
	s := &store.TestSession{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    store.StatusInProgress,
		StartedAt: time.Now(),
	}
	f.sessions[s.ID] = s
	f.answers[s.ID] = make(map[string]int)
	return s, nil
}

func (f *fakeStore) FetchSession(_ context.Context, id uuid.UUID) (*store.TestSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) FetchActiveSession(_ context.Context, userID uuid.UUID) (*store.TestSession, error) {
	var latest *store.TestSession
	for _, s := range f.sessions {
		if s.UserID != userID || s.Status != store.StatusInProgress {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeStore) FetchLatestCompleted(_ context.Context, userID uuid.UUID) (*store.TestSession, error) {
	var latest *store.TestSession
	for _, s := range f.sessions {
		if s.UserID != userID || s.Status != store.StatusCompleted {
			continue
		}
		if latest == nil || s.CompletedAt.After(*latest.CompletedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeStore) UpsertAnswer(_ context.Context, sessionID uuid.UUID, questionID string, value int) error {
	f.answers[sessionID][questionID] = value
	return nil
}

func (f *fakeStore) FetchAnswers(_ context.Context, sessionID uuid.UUID) ([]store.Answer, error) {
	var out []store.Answer
	for q, v := range f.answers[sessionID] {
		out = append(out, store.Answer{QuestionID: q, Value: v})
	}
	return out, nil
}

func (f *fakeStore) CompleteSession(_ context.Context, sessionID uuid.UUID, result store.SessionResult) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return store.ErrNotFound
	}
	f.completes++
	s.Status = store.StatusCompleted
	s.CompletedAt = &result.CompletedAt
	s.DeterminedType = &result.DeterminedType
	scores := result.Scores
	s.Scores = &scores
	confidence := result.Confidence
	s.Confidence = &confidence
	return nil
}

type fakePublisher struct {
	subjects []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeStore, *fakePublisher) {
	t.Helper()
	st := newFakeStore()
	pub := &fakePublisher{}
	svc := New(st, catalog.New(catalog.DefaultLocale), pub, slog.New(slog.DiscardHandler))
	return svc, st, pub
}

func TestStartAndActiveSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	session, err := svc.Start(ctx, userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	state, err := svc.ActiveSession(ctx, userID)
	if err != nil {
		t.Fatalf("ActiveSession: %v", err)
	}
	if state.TestID != session.ID {
		t.Errorf("active session = %s, want %s", state.TestID, session.ID)
	}
	if state.Progress != 0 || state.Total != 24 {
		t.Errorf("progress = %d/%d, want 0/24", state.Progress, state.Total)
	}
}

func TestActiveSessionNone(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ActiveSession(context.Background(), uuid.New())
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestSaveAnswerValidation(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	session, _ := svc.Start(ctx, userID)

	tests := []struct {
		name       string
		questionID string
		value      int
		want       error
	}{
		{"value below range", "ei_1", 0, ErrInvalidScore},
		{"value above range", "ei_1", 8, ErrInvalidScore},
		{"unknown question", "xx_1", 4, ErrUnknownQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SaveAnswer(ctx, userID, session.ID, tt.questionID, tt.value)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if len(st.answers[session.ID]) != 0 {
		t.Errorf("rejected answers were persisted: %v", st.answers[session.ID])
	}
}

func TestSaveAnswerUpsert(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	session, _ := svc.Start(ctx, userID)

	if err := svc.SaveAnswer(ctx, userID, session.ID, "ei_1", 2); err != nil {
		t.Fatalf("SaveAnswer: %v", err)
	}
	if err := svc.SaveAnswer(ctx, userID, session.ID, "ei_1", 6); err != nil {
		t.Fatalf("SaveAnswer (overwrite): %v", err)
	}
	if got := st.answers[session.ID]["ei_1"]; got != 6 {
		t.Errorf("stored value = %d, want 6 (last write wins)", got)
	}
	if len(st.answers[session.ID]) != 1 {
		t.Errorf("answer count = %d, want 1", len(st.answers[session.ID]))
	}
}

func TestSaveAnswerSessionErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.SaveAnswer(ctx, userID, uuid.New(), "ei_1", 4); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown session: err = %v, want ErrSessionNotFound", err)
	}

	session, _ := svc.Start(ctx, userID)
	if err := svc.SaveAnswer(ctx, uuid.New(), session.ID, "ei_1", 4); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign user: err = %v, want ErrForbidden", err)
	}

	_ = svc.SaveAnswer(ctx, userID, session.ID, "ei_1", 4)
	if _, err := svc.Complete(ctx, userID, session.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := svc.SaveAnswer(ctx, userID, session.ID, "ei_2", 4); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("completed session: err = %v, want ErrSessionCompleted", err)
	}
}

func TestCompleteWithoutAnswers(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	session, _ := svc.Start(ctx, userID)

	if _, err := svc.Complete(ctx, userID, session.ID); !errors.Is(err, ErrInsufficientAnswers) {
		t.Fatalf("err = %v, want ErrInsufficientAnswers", err)
	}
	if st.sessions[session.ID].Status != store.StatusInProgress {
		t.Error("failed completion changed session status")
	}
}

func TestCompleteScoresAndPersists(t *testing.T) {
	svc, st, pub := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	session, _ := svc.Start(ctx, userID)

	for _, q := range catalog.New(catalog.DefaultLocale).Questions(catalog.LocaleEN) {
		if err := svc.SaveAnswer(ctx, userID, session.ID, q.ID, 7); err != nil {
			t.Fatalf("SaveAnswer(%s): %v", q.ID, err)
		}
	}

	result, err := svc.Complete(ctx, userID, session.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Type != "INFP" {
		t.Errorf("type = %s, want INFP", result.Type)
	}

	persisted := st.sessions[session.ID]
	if persisted.Status != store.StatusCompleted {
		t.Error("session not marked completed")
	}
	if persisted.DeterminedType == nil || *persisted.DeterminedType != result.Type {
		t.Error("determined type not persisted")
	}
	if len(pub.subjects) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.subjects))
	}
	wantSubject := EventSubjectPrefix + "." + session.ID.String()
	if pub.subjects[0] != wantSubject {
		t.Errorf("subject = %s, want %s", pub.subjects[0], wantSubject)
	}
}

func TestCompleteIdempotent(t *testing.T) {
	svc, st, pub := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	session, _ := svc.Start(ctx, userID)
	_ = svc.SaveAnswer(ctx, userID, session.ID, "ei_1", 7)

	first, err := svc.Complete(ctx, userID, session.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	second, err := svc.Complete(ctx, userID, session.ID)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if *second != *first {
		t.Errorf("second completion returned %+v, first %+v", second, first)
	}
	if st.completes != 1 {
		t.Errorf("store completed %d times, want 1", st.completes)
	}
	if len(pub.subjects) != 1 {
		t.Errorf("published %d events, want 1", len(pub.subjects))
	}
}
