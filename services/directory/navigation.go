package directory

import (
	"context"
	"fmt"

	"carelink/models"
	"carelink/services/store"
)

// Navigate moves to frame, pushing the current frame onto the history.
func (s *Service) Navigate(ctx context.Context, frame models.Frame) (store.State, error) {
	if err := s.check(frame); err != nil {
		return s.store.State(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, store.Navigate{Frame: frame}), nil
}

// Back returns to the previous frame. With no history it changes nothing.
func (s *Service) Back(ctx context.Context) store.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, store.GoBack{})
}

// SetFilters stores the active query and filters.
func (s *Service) SetFilters(ctx context.Context, query string, filters models.FilterSet) (store.State, error) {
	if err := s.check(filterBounds{MinRating: filters.MinRating}); err != nil {
		return s.store.State(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, store.SetFilters{Query: query, Filters: filters}), nil
}

// SelectProvider records the provider on screen.
func (s *Service) SelectProvider(ctx context.Context, providerID string) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.provider(s.store.State(), providerID); err != nil {
		return s.store.State(), err
	}
	return s.dispatch(ctx, store.SelectProvider{ProviderID: providerID}), nil
}

var dashboardTabs = map[string]bool{
	"overview": true, "enquiries": true, "bookings": true, "reviews": true,
	"favourites": true, "profile": true, "analytics": true, "subscription": true,
}

// SetDashboardTab records the active dashboard tab.
func (s *Service) SetDashboardTab(ctx context.Context, tab string) (store.State, error) {
	if !dashboardTabs[tab] {
		return s.store.State(), fmt.Errorf("%w: unknown dashboard tab %q", ErrValidation, tab)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, store.SetDashboardTab{Tab: tab}), nil
}
