package directory

import (
	"context"
	"fmt"

	"carelink/models"
	"carelink/services/store"
)

// SubmitReview records the session participant's review of a provider.
func (s *Service) SubmitReview(ctx context.Context, in ReviewInput) (models.Review, error) {
	if err := s.check(in); err != nil {
		return models.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.requireRole(state, models.RoleParticipant)
	if err != nil {
		return models.Review{}, err
	}
	if _, err := s.provider(state, in.ProviderID); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ID:              s.newID(),
		ProviderID:      in.ProviderID,
		ParticipantID:   sess.ID,
		ParticipantName: sess.Name,
		Rating:          in.Rating,
		Text:            in.Text,
		CreatedAt:       s.now(),
	}
	if _, err := s.commit(ctx, "create_review",
		func(ctx context.Context) error { return s.remote.CreateReview(ctx, review) },
		store.SubmitReview{Review: review}); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// RespondReview sets the reviewed provider's public reply. A second reply
// replaces the first.
func (s *Service) RespondReview(ctx context.Context, reviewID string, in RespondInput) (store.State, error) {
	if err := s.check(in); err != nil {
		return s.store.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.requireRole(state, models.RoleProvider)
	if err != nil {
		return state, err
	}
	review, ok := state.Review(reviewID)
	if !ok {
		return state, notFound("review", reviewID)
	}
	if review.ProviderID != sess.ID {
		return state, ErrForbidden
	}
	p, err := s.provider(state, sess.ID)
	if err != nil {
		return state, err
	}
	if !models.CanRespondToReviews(p) {
		return state, fmt.Errorf("review responses: %w", ErrFeatureUnavailable)
	}

	at := s.now()
	return s.commit(ctx, "respond_review",
		func(ctx context.Context) error {
			return s.remote.RespondReview(ctx, reviewID, models.ReviewResponse{Text: in.Text, Date: at})
		},
		store.RespondReview{ReviewID: reviewID, Text: in.Text, At: at})
}
