package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carelink/metrics"
	"carelink/models"
	"carelink/services/store"
)

// StateSource is the read side of the store.
type StateSource interface {
	Snapshot() (store.State, uint64)
}

// Service answers search requests against the current store state. Results
// are cached per store revision, so any dispatched action invalidates them.
// Keys also carry a per-process epoch since revisions restart at zero.
type Service struct {
	epoch   string
	source  StateSource
	cache   Cache
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService builds a search service. cache may be nil.
func NewService(source StateSource, cache Cache, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{epoch: uuid.NewString(), source: source, cache: cache, logger: logger, metrics: m}
}

// Search returns the providers matching query and filters in ranked order.
// Cache failures are logged and the ranking is computed directly.
func (s *Service) Search(ctx context.Context, query string, filters models.FilterSet) []models.Provider {
	state, revision := s.source.Snapshot()
	if s.cache == nil {
		s.metrics.IncrementSearch("bypass")
		return Rank(state.Providers, query, filters)
	}

	key, err := cacheKey(s.epoch, revision, query, filters)
	if err != nil {
		s.logger.Warn("Failed to build search cache key", zap.Error(err))
		s.metrics.IncrementSearch("bypass")
		return Rank(state.Providers, query, filters)
	}

	ids, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Search cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		if providers, ok := resolve(state, ids); ok {
			s.metrics.IncrementSearch("hit")
			return providers
		}
	}

	s.metrics.IncrementSearch("miss")
	ranked := Rank(state.Providers, query, filters)
	ids = make([]string, len(ranked))
	for i, p := range ranked {
		ids[i] = p.ID
	}
	if err := s.cache.Set(ctx, key, ids); err != nil {
		s.logger.Warn("Search cache write failed", zap.String("key", key), zap.Error(err))
	}
	return ranked
}

// Featured returns up to limit premium providers in ranked order.
func (s *Service) Featured(limit int) []models.Provider {
	state, _ := s.source.Snapshot()
	var featured []models.Provider
	for _, p := range Rank(state.Providers, "", models.FilterSet{}) {
		if len(featured) == limit {
			break
		}
		if p.Tier == models.TierPremium {
			featured = append(featured, p)
		}
	}
	return featured
}

func cacheKey(epoch string, revision uint64, query string, filters models.FilterSet) (string, error) {
	payload, err := json.Marshal(struct {
		Query   string           `json:"q"`
		Filters models.FilterSet `json:"f"`
	}{strings.ToLower(query), filters})
	if err != nil {
		return "", fmt.Errorf("failed to marshal search request: %w", err)
	}
	return fmt.Sprintf("search:%s:%d:%x", epoch, revision, sha256.Sum256(payload)), nil
}

// resolve maps cached ids back to providers. It fails if any id is gone.
func resolve(state store.State, ids []string) ([]models.Provider, bool) {
	providers := make([]models.Provider, 0, len(ids))
	for _, id := range ids {
		p, ok := state.Provider(id)
		if !ok {
			return nil, false
		}
		providers = append(providers, p)
	}
	return providers, true
}
