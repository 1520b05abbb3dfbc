package directory

import (
	"context"
	"fmt"

	"carelink/models"
	"carelink/services/store"
)

// ToggleFavourite adds or removes a provider from the session participant's favourites.
func (s *Service) ToggleFavourite(ctx context.Context, providerID string) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.requireRole(state, models.RoleParticipant)
	if err != nil {
		return state, err
	}
	participant, ok := state.Participant(sess.ID)
	if !ok {
		return state, notFound("participant", sess.ID)
	}
	if _, err := s.provider(state, providerID); err != nil && !participant.IsFavourite(providerID) {
		// a favourite whose provider disappeared may still be removed
		return state, err
	}

	favourites := models.ToggleFavourite(participant.Favourites, providerID)
	return s.commit(ctx, "set_favourites",
		func(ctx context.Context) error { return s.remote.SetFavourites(ctx, sess.ID, favourites) },
		store.ToggleFavourite{ProviderID: providerID})
}

// UpdateParticipant merges patch into a participant. Participants may only
// edit themselves; admins may edit anyone.
func (s *Service) UpdateParticipant(ctx context.Context, id string, patch models.ParticipantPatch) (store.State, error) {
	if err := s.check(patch); err != nil {
		return s.store.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.session(state)
	if err != nil {
		return state, err
	}
	if sess.Role != models.RoleAdmin && !(sess.Role == models.RoleParticipant && sess.ID == id) {
		return state, ErrForbidden
	}
	if _, ok := state.Participant(id); !ok {
		return state, notFound("participant", id)
	}
	return s.commit(ctx, "update_participant",
		func(ctx context.Context) error { return s.remote.UpdateParticipant(ctx, id, patch) },
		store.UpdateParticipant{ParticipantID: id, Patch: patch})
}

// UpdateProvider merges patch into a provider listing. The description is
// held to the provider's tier limit.
func (s *Service) UpdateProvider(ctx context.Context, id string, patch models.ProviderPatch) (store.State, error) {
	if err := s.check(patch); err != nil {
		return s.store.State(), err
	}
	if patch.Categories != nil {
		for _, c := range *patch.Categories {
			if _, ok := models.CategoryName(c); !ok {
				return s.store.State(), fmt.Errorf("%w: unknown category %q", ErrValidation, c)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.session(state)
	if err != nil {
		return state, err
	}
	if sess.Role != models.RoleAdmin && !(sess.Role == models.RoleProvider && sess.ID == id) {
		return state, ErrForbidden
	}
	p, err := s.provider(state, id)
	if err != nil {
		return state, err
	}
	if patch.Description != nil {
		if limit := models.DescriptionLimit(p); len([]rune(*patch.Description)) > limit {
			return state, fmt.Errorf("%w: description exceeds %d characters on the %s tier", ErrValidation, limit, p.Tier)
		}
	}
	return s.commit(ctx, "update_provider",
		func(ctx context.Context) error { return s.remote.UpdateProvider(ctx, id, patch) },
		store.UpdateProvider{ProviderID: id, Patch: patch})
}

// UpgradeTier records a completed subscription change. It is called by the
// billing worker, not by a session, so it performs no session check.
func (s *Service) UpgradeTier(ctx context.Context, providerID string, tier models.Tier) (store.State, error) {
	if _, ok := models.ParseTier(string(tier)); !ok {
		return s.store.State(), fmt.Errorf("%w: unknown tier %q", ErrValidation, tier)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	if _, err := s.provider(state, providerID); err != nil {
		return state, err
	}
	return s.commit(ctx, "update_tier",
		func(ctx context.Context) error { return s.remote.UpdateTier(ctx, providerID, tier) },
		store.UpgradeTier{ProviderID: providerID, Tier: tier})
}

// RecordView counts one view of a provider's listing.
func (s *Service) RecordView(ctx context.Context, providerID string) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	if _, err := s.provider(state, providerID); err != nil {
		return state, err
	}
	return s.commit(ctx, "increment_views",
		func(ctx context.Context) error { return s.remote.IncrementViews(ctx, providerID) },
		store.IncrementViews{ProviderID: providerID})
}
