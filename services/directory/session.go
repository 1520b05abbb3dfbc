package directory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carelink/database/repository/snapshot"
	"carelink/models"
	"carelink/services/store"
)

// Login opens a session for an authenticated identity. The cached profile is
// filled from the matching collection entry.
func (s *Service) Login(ctx context.Context, sess models.Session) (store.State, error) {
	if sess.ID == "" {
		return s.store.State(), fmt.Errorf("%w: session id is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	switch sess.Role {
	case models.RoleParticipant:
		p, ok := state.Participant(sess.ID)
		if !ok {
			return state, notFound("participant", sess.ID)
		}
		cached := p.Clone()
		sess.Participant, sess.Provider = &cached, nil
	case models.RoleProvider:
		p, err := s.provider(state, sess.ID)
		if err != nil {
			return state, err
		}
		cached := p.Clone()
		sess.Provider, sess.Participant = &cached, nil
	case models.RoleAdmin:
		sess.Participant, sess.Provider = nil, nil
	default:
		return state, fmt.Errorf("%w: unknown role %q", ErrValidation, sess.Role)
	}
	return s.dispatch(ctx, store.Login{Session: sess}), nil
}

// Logout closes the session and clears the saved snapshot's session.
func (s *Service) Logout(ctx context.Context) store.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, store.Logout{})
}

// RegisterParticipant creates a participant and opens its session.
func (s *Service) RegisterParticipant(ctx context.Context, in ParticipantRegistration) (models.Participant, error) {
	if err := s.check(in); err != nil {
		return models.Participant{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Participant{
		ID:         s.newID(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Location:   in.Location,
		NDISNumber: in.NDISNumber,
		PlanType:   in.PlanType,
		Goals:      in.Goals,
		Interests:  in.Interests,
		Favourites: []string{},
		CreatedAt:  s.now(),
	}
	sess := models.Session{ID: p.ID, Role: models.RoleParticipant, Name: p.Name, Email: p.Email}
	_, err := s.commit(ctx, "create_participant",
		func(ctx context.Context) error { return s.remote.CreateParticipant(ctx, p) },
		store.Register{Session: sess, Participant: &p})
	return p, err
}

// RegisterProvider creates a free-tier provider listing and opens its session.
func (s *Service) RegisterProvider(ctx context.Context, in ProviderRegistration) (models.Provider, error) {
	if err := s.check(in); err != nil {
		return models.Provider{}, err
	}
	for _, c := range in.Categories {
		if _, ok := models.CategoryName(c); !ok {
			return models.Provider{}, fmt.Errorf("%w: unknown category %q", ErrValidation, c)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Provider{
		ID:               s.newID(),
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Website:          in.Website,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Location:         in.Location,
		Categories:       in.Categories,
		Tier:             models.TierFree,
		ResponseTime:     "Within 48 hours",
		WaitTime:         "Immediate",
		PlanTypes:        in.PlanTypes,
		ServiceAreas:     in.ServiceAreas,
		Availability:     map[string]string{},
		CreatedAt:        s.now(),
	}
	if limit := models.DescriptionLimit(p); len([]rune(p.Description)) > limit {
		return models.Provider{}, fmt.Errorf("%w: description exceeds %d characters on the %s tier", ErrValidation, limit, p.Tier)
	}

	sess := models.Session{ID: p.ID, Role: models.RoleProvider, Name: p.Name, Email: p.Email}
	_, err := s.commit(ctx, "create_provider",
		func(ctx context.Context) error { return s.remote.CreateProvider(ctx, p) },
		store.Register{Session: sess, Provider: &p})
	return p, err
}

// RestoreSession reapplies the saved snapshot. A missing snapshot is not an
// error; a saved session whose record no longer exists is dropped.
func (s *Service) RestoreSession(ctx context.Context) (store.State, error) {
	snap, err := s.snapshots.Load(ctx)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return s.store.State(), nil
	}
	if err != nil {
		return s.store.State(), fmt.Errorf("failed to restore session: %w", err)
	}

	if snap.Theme != "" {
		if _, err := s.SetTheme(ctx, snap.Theme); err != nil {
			s.logger.Warn("Ignoring saved theme", zap.String("theme", string(snap.Theme)), zap.Error(err))
		}
	}
	if snap.Session == nil {
		return s.store.State(), nil
	}
	state, err := s.Login(ctx, *snap.Session)
	if err != nil {
		s.logger.Warn("Saved session no longer valid", zap.String("id", snap.Session.ID), zap.Error(err))
		return state, nil
	}
	return state, nil
}

// SetTheme records the theme preference.
func (s *Service) SetTheme(ctx context.Context, theme models.Theme) (store.State, error) {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return s.store.State(), fmt.Errorf("%w: unknown theme %q", ErrValidation, theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, store.SetTheme{Theme: theme}), nil
}
