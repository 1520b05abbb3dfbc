package directory

import (
	"context"
	"fmt"

	"carelink/models"
	"carelink/services/store"
)

// CreateBooking books a session with a provider whose tier allows direct booking.
func (s *Service) CreateBooking(ctx context.Context, in BookingInput) (models.Booking, error) {
	if err := s.check(in); err != nil {
		return models.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.requireRole(state, models.RoleParticipant)
	if err != nil {
		return models.Booking{}, err
	}
	p, err := s.provider(state, in.ProviderID)
	if err != nil {
		return models.Booking{}, err
	}
	if !models.CanDirectBook(p) {
		return models.Booking{}, fmt.Errorf("direct booking with %s: %w", p.Name, ErrFeatureUnavailable)
	}

	booking := models.Booking{
		ID:            s.newID(),
		ParticipantID: sess.ID,
		ProviderID:    p.ID,
		Service:       in.Service,
		Date:          in.Date,
		Time:          in.Time,
		Duration:      in.Duration,
		Notes:         in.Notes,
		Status:        models.BookingPending,
		CreatedAt:     s.now(),
	}
	if _, err := s.commit(ctx, "create_booking",
		func(ctx context.Context) error { return s.remote.CreateBooking(ctx, booking) },
		store.CreateBooking{Booking: booking}); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// UpdateBookingStatus lets the booked provider set the status. The
// participant may only cancel. Transition order is not enforced here.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (store.State, error) {
	if _, ok := models.ParseBookingStatus(string(status)); !ok {
		return s.store.State(), fmt.Errorf("%w: unknown booking status %q", ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	booking, err := s.bookingForParty(state, bookingID)
	if err != nil {
		return state, err
	}
	if sess := *state.Session; sess.Role == models.RoleParticipant && status != models.BookingCancelled {
		return state, fmt.Errorf("%w: participants may only cancel", ErrForbidden)
	}
	if booking.Status == status {
		return state, nil
	}
	return s.commit(ctx, "update_booking_status",
		func(ctx context.Context) error { return s.remote.UpdateBookingStatus(ctx, bookingID, status) },
		store.UpdateBookingStatus{BookingID: bookingID, Status: status})
}

// CancelBooking cancels a booking on behalf of either party.
func (s *Service) CancelBooking(ctx context.Context, bookingID string) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	booking, err := s.bookingForParty(state, bookingID)
	if err != nil {
		return state, err
	}
	if booking.Status == models.BookingCancelled {
		return state, nil
	}
	return s.commit(ctx, "update_booking_status",
		func(ctx context.Context) error {
			return s.remote.UpdateBookingStatus(ctx, bookingID, models.BookingCancelled)
		},
		store.CancelBooking{BookingID: bookingID})
}

// BookingsForSession lists the bookings the session takes part in.
func (s *Service) BookingsForSession() ([]models.Booking, error) {
	state := s.store.State()
	sess, err := s.session(state)
	if err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, b := range state.Bookings {
		if sess.Role == models.RoleAdmin || b.ParticipantID == sess.ID || b.ProviderID == sess.ID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) bookingForParty(state store.State, bookingID string) (models.Booking, error) {
	sess, err := s.session(state)
	if err != nil {
		return models.Booking{}, err
	}
	booking, ok := state.Booking(bookingID)
	if !ok {
		return booking, notFound("booking", bookingID)
	}
	if (sess.Role == models.RoleParticipant && booking.ParticipantID == sess.ID) ||
		(sess.Role == models.RoleProvider && booking.ProviderID == sess.ID) {
		return booking, nil
	}
	return booking, ErrForbidden
}
