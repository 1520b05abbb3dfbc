package directory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carelink/database/repository"
	"carelink/models"
	"carelink/services/store"
)

// Hydrate loads every collection from the remote backend. When no backend
// is configured it loads fallback instead. A remote failure leaves the
// store untouched.
func (s *Service) Hydrate(ctx context.Context, fallback models.Collections) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadRemote(ctx)
	if errors.Is(err, repository.ErrNotConfigured) {
		s.logger.Info("Remote persistence not configured; using bundled dataset",
			zap.Int("providers", len(fallback.Providers)))
		return s.dispatch(ctx, store.Hydrate{Collections: fallback}), nil
	}
	if err != nil {
		s.metrics.IncrementRemoteFailure("hydrate")
		return s.store.State(), fmt.Errorf("failed to load directory: %w", err)
	}
	s.logger.Info("Loaded directory from remote backend",
		zap.Int("providers", len(c.Providers)),
		zap.Int("participants", len(c.Participants)))
	return s.dispatch(ctx, store.Hydrate{Collections: c}), nil
}

func (s *Service) loadRemote(ctx context.Context) (models.Collections, error) {
	var c models.Collections
	var err error
	if c.Providers, err = s.remote.ListProviders(ctx); err != nil {
		return c, err
	}
	if c.Participants, err = s.remote.ListParticipants(ctx); err != nil {
		return c, err
	}
	if c.Reviews, err = s.remote.ListReviews(ctx); err != nil {
		return c, err
	}
	if c.Enquiries, err = s.remote.ListEnquiries(ctx); err != nil {
		return c, err
	}
	if c.Bookings, err = s.remote.ListBookings(ctx); err != nil {
		return c, err
	}
	return c, nil
}
