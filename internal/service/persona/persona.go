// Package persona serves the persona roster and compatibility-based
// recommendations.
package persona

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mizutanik/kokoro_backend/internal/mbti"
	"github.com/mizutanik/kokoro_backend/internal/store"
)

const (
	cacheKeyPrefix = "recommendations:"
	cacheTTL       = time.Hour
)

// Cache is the slice of the redis client used for the per-user
// recommendation cache. *goredis.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// Detail is a persona together with its derived communication profile.
type Detail struct {
	Persona    store.Persona         `json:"persona"`
	Parameters PersonalityParameters `json:"parameters"`
}

// Recommendation pairs a persona with its compatibility score against
// the user's diagnosed type.
type Recommendation struct {
	Persona       store.Persona `json:"persona"`
	Compatibility int           `json:"compatibility"`
}

// Service exposes persona listing and recommendations.
type Service interface {
	List(ctx context.Context) ([]store.Persona, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Detail, error)
	// Recommend ranks personas against the user's latest completed
	// diagnosis. Results are cached per user.
	Recommend(ctx context.Context, userID uuid.UUID) ([]Recommendation, error)
	// RecommendForType ranks personas against an explicit type,
	// bypassing the per-user cache.
	RecommendForType(ctx context.Context, code mbti.Code) ([]Recommendation, error)
	// InvalidateRecommendations drops the cached ranking so the next
	// Recommend call recomputes from the latest completed diagnosis.
	// Must be called whenever a new diagnosis completes.
	InvalidateRecommendations(ctx context.Context, userID uuid.UUID)
}

type service struct {
	personas  store.PersonaStore
	diagnoses store.DiagnosisStore
	cache     Cache
	logger    *slog.Logger
}

func New(personas store.PersonaStore, diagnoses store.DiagnosisStore, cache Cache, logger *slog.Logger) Service {
	return &service{personas: personas, diagnoses: diagnoses, cache: cache, logger: logger}
}

func (s *service) List(ctx context.Context) ([]store.Persona, error) {
	personas, err := s.personas.ListPersonas(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing personas: %w", err)
	}
	return personas, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	persona, err := s.personas.GetPersona(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching persona: %w", err)
	}
	return &Detail{
		Persona:    *persona,
		Parameters: ParametersForType(persona.MBTIType),
	}, nil
}

func (s *service) Recommend(ctx context.Context, userID uuid.UUID) ([]Recommendation, error) {
	if cached, ok := s.readCache(ctx, userID); ok {
		return cached, nil
	}

	session, err := s.diagnoses.FetchLatestCompleted(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoCompletedDiagnosis
		}
		return nil, fmt.Errorf("loading latest diagnosis: %w", err)
	}
	if session.DeterminedType == nil {
		return nil, ErrNoCompletedDiagnosis
	}

	recommendations, err := s.RecommendForType(ctx, *session.DeterminedType)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, userID, recommendations)
	return recommendations, nil
}

func (s *service) RecommendForType(ctx context.Context, code mbti.Code) ([]Recommendation, error) {
	personas, err := s.personas.ListPersonas(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing personas: %w", err)
	}

	byID := make(map[string]store.Persona, len(personas))
	candidates := make([]mbti.Candidate, 0, len(personas))
	for _, p := range personas {
		id := p.ID.String()
		byID[id] = p
		candidates = append(candidates, mbti.Candidate{ID: id, MBTIType: p.MBTIType})
	}

	ranked, err := mbti.TopRecommendations(code, candidates)
	if err != nil {
		return nil, fmt.Errorf("ranking personas: %w", err)
	}

	recommendations := make([]Recommendation, len(ranked))
	for i, r := range ranked {
		recommendations[i] = Recommendation{
			Persona:       byID[r.ID],
			Compatibility: r.Compatibility,
		}
	}
	return recommendations, nil
}

func (s *service) InvalidateRecommendations(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyPrefix+userID.String()).Err(); err != nil {
		s.logger.WarnContext(ctx, "recommendation cache invalidation failed", "error", err)
	}
}

func (s *service) readCache(ctx context.Context, userID uuid.UUID) ([]Recommendation, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKeyPrefix+userID.String()).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.logger.WarnContext(ctx, "recommendation cache read failed", "error", err)
		}
		return nil, false
	}
	var recommendations []Recommendation
	if err := json.Unmarshal(raw, &recommendations); err != nil {
		s.logger.WarnContext(ctx, "recommendation cache decode failed", "error", err)
		return nil, false
	}
	return recommendations, true
}

func (s *service) writeCache(ctx context.Context, userID uuid.UUID, recommendations []Recommendation) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(recommendations)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKeyPrefix+userID.String(), raw, cacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "recommendation cache write failed", "error", err)
	}
}
