package persona

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mizutanik/kokoro_backend/internal/mbti"
	"github.com/mizutanik/kokoro_backend/internal/store"
)

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) *goredis.StringCmd {
	raw, ok := f.entries[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(raw, nil)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *goredis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.entries[key] = string(v)
	case string:
		f.entries[key] = v
	}
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.entries[k]; ok {
			delete(f.entries, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

type fakePersonaStore struct {
	personas []store.Persona
}

func (f *fakePersonaStore) ListPersonas(_ context.Context) ([]store.Persona, error) {
	return f.personas, nil
}

func (f *fakePersonaStore) GetPersona(_ context.Context, id uuid.UUID) (*store.Persona, error) {
	for _, p := range f.personas {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePersonaStore) UpsertPersona(_ context.Context, p store.Persona) error {
	f.personas = append(f.personas, p)
	return nil
}

type fakeDiagnosisStore struct {
	latest      *store.TestSession
	latestCalls int
}

func (f *fakeDiagnosisStore) CreateSession(context.Context, uuid.UUID) (*store.TestSession, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeDiagnosisStore) FetchSession(context.Context, uuid.UUID) (*store.TestSession, error) {
	return nil, store.ErrNotFound
}
func (f *fakeDiagnosisStore) FetchActiveSession(context.Context, uuid.UUID) (*store.TestSession, error) {
	return nil, store.ErrNotFound
}
func (f *fakeDiagnosisStore) FetchLatestCompleted(context.Context, uuid.UUID) (*store.TestSession, error) {
	f.latestCalls++
	if f.latest == nil {
		return nil, store.ErrNotFound
	}
	return f.latest, nil
}
func (f *fakeDiagnosisStore) UpsertAnswer(context.Context, uuid.UUID, string, int) error {
	return errors.New("not implemented")
}
func (f *fakeDiagnosisStore) FetchAnswers(context.Context, uuid.UUID) ([]store.Answer, error) {
	return nil, nil
}
func (f *fakeDiagnosisStore) CompleteSession(context.Context, uuid.UUID, store.SessionResult) error {
	return errors.New("not implemented")
}

func completedSession(userID uuid.UUID, code mbti.Code) *store.TestSession {
	now := time.Now()
	return &store.TestSession{
		ID:             uuid.New(),
		UserID:         userID,
		Status:         store.StatusCompleted,
		CompletedAt:    &now,
		DeterminedType: &code,
	}
}

func testPersonas() []store.Persona {
	return []store.Persona{
		{ID: uuid.New(), Name: "Aoi", MBTIType: "INTJ"},
		{ID: uuid.New(), Name: "Hana", MBTIType: "ENFP"},
		{ID: uuid.New(), Name: "Ren", MBTIType: "ISTJ"},
		{ID: uuid.New(), Name: "Sora", MBTIType: "ESFP"},
		{ID: uuid.New(), Name: "Yui", MBTIType: ""},
	}
}

func TestRecommend(t *testing.T) {
	userID := uuid.New()
	svc := New(
		&fakePersonaStore{personas: testPersonas()},
		&fakeDiagnosisStore{latest: completedSession(userID, "INTJ")},
		nil,
		slog.New(slog.DiscardHandler),
	)

	got, err := svc.Recommend(context.Background(), userID)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(got))
	}
	wantNames := map[string]int{"Aoi": 100, "Hana": 85, "Ren": 60}
	for i, rec := range got {
		want, ok := wantNames[rec.Persona.Name]
		if !ok {
			t.Errorf("unexpected persona %s in results", rec.Persona.Name)
			continue
		}
		if rec.Compatibility != want {
			t.Errorf("persona %s compatibility = %d, want %d", rec.Persona.Name, rec.Compatibility, want)
		}
		if i > 0 && got[i-1].Compatibility < rec.Compatibility {
			t.Error("results not sorted by descending compatibility")
		}
	}
}

func TestRecommendServedFromCache(t *testing.T) {
	userID := uuid.New()
	diagnoses := &fakeDiagnosisStore{latest: completedSession(userID, "INTJ")}
	svc := New(
		&fakePersonaStore{personas: testPersonas()},
		diagnoses,
		newFakeCache(),
		slog.New(slog.DiscardHandler),
	)

	first, err := svc.Recommend(context.Background(), userID)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := svc.Recommend(context.Background(), userID)
	if err != nil {
		t.Fatalf("Recommend (cached): %v", err)
	}
	if diagnoses.latestCalls != 1 {
		t.Errorf("store consulted %d times, want 1 (second call should hit the cache)", diagnoses.latestCalls)
	}
	if len(first) != len(second) || first[0].Persona.Name != second[0].Persona.Name {
		t.Error("cached result differs from the computed one")
	}
}

func TestRecommendAfterRetake(t *testing.T) {
	userID := uuid.New()
	diagnoses := &fakeDiagnosisStore{latest: completedSession(userID, "INTJ")}
	svc := New(
		&fakePersonaStore{personas: testPersonas()},
		diagnoses,
		newFakeCache(),
		slog.New(slog.DiscardHandler),
	)
	ctx := context.Background()

	got, err := svc.Recommend(ctx, userID)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got[0].Persona.Name != "Aoi" {
		t.Fatalf("top result = %s, want Aoi for INTJ", got[0].Persona.Name)
	}

	// The user retakes the test and lands on a different type. The
	// completion path invalidates the cache, so the next read must
	// reflect the new diagnosis instead of the hour-old ranking.
	diagnoses.latest = completedSession(userID, "ENFP")
	svc.InvalidateRecommendations(ctx, userID)

	got, err = svc.Recommend(ctx, userID)
	if err != nil {
		t.Fatalf("Recommend after retake: %v", err)
	}
	if got[0].Persona.Name != "Hana" || got[0].Compatibility != 100 {
		t.Errorf("top result after retake = %s (%d), want Hana (100)", got[0].Persona.Name, got[0].Compatibility)
	}
	if diagnoses.latestCalls != 2 {
		t.Errorf("store consulted %d times, want 2 (invalidation must force a recompute)", diagnoses.latestCalls)
	}
}

func TestRecommendNoCompletedDiagnosis(t *testing.T) {
	svc := New(
		&fakePersonaStore{personas: testPersonas()},
		&fakeDiagnosisStore{},
		nil,
		slog.New(slog.DiscardHandler),
	)
	_, err := svc.Recommend(context.Background(), uuid.New())
	if !errors.Is(err, ErrNoCompletedDiagnosis) {
		t.Errorf("err = %v, want ErrNoCompletedDiagnosis", err)
	}
}

func TestRecommendForTypeSkipsUntyped(t *testing.T) {
	svc := New(
		&fakePersonaStore{personas: testPersonas()},
		&fakeDiagnosisStore{},
		nil,
		slog.New(slog.DiscardHandler),
	)
	got, err := svc.RecommendForType(context.Background(), "ISTJ")
	if err != nil {
		t.Fatalf("RecommendForType: %v", err)
	}
	for _, rec := range got {
		if rec.Persona.Name == "Yui" {
			t.Error("untyped persona appeared in recommendations")
		}
	}
	if got[0].Persona.Name != "Ren" || got[0].Compatibility != 100 {
		t.Errorf("top result = %s (%d), want Ren (100)", got[0].Persona.Name, got[0].Compatibility)
	}
}

func TestGetByID(t *testing.T) {
	personas := testPersonas()
	svc := New(&fakePersonaStore{personas: personas}, &fakeDiagnosisStore{}, nil, slog.New(slog.DiscardHandler))

	detail, err := svc.GetByID(context.Background(), personas[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if detail.Persona.Name != "Aoi" {
		t.Errorf("name = %s, want Aoi", detail.Persona.Name)
	}
	if detail.Parameters.AnalyticalDepth != 85 {
		t.Errorf("analyticalDepth = %d, want the curated INTJ profile", detail.Parameters.AnalyticalDepth)
	}

	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestParametersForType(t *testing.T) {
	if got := ParametersForType("ENFP"); got.Creativity != 90 {
		t.Errorf("ENFP creativity = %d, want 90", got.Creativity)
	}
	if got := ParametersForType("ESFJ"); got != DefaultParameters() {
		t.Errorf("uncurated type should fall back to defaults, got %+v", got)
	}
	if got := ParametersForType(""); got != DefaultParameters() {
		t.Errorf("empty type should fall back to defaults, got %+v", got)
	}
	if !DefaultParameters().Valid() {
		t.Error("default parameters out of range")
	}
}
