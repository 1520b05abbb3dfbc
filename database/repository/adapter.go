package repository

import (
	"context"
	"errors"
	"fmt"

	"carelink/models"
)

// ErrNotConfigured means no remote backend is set up. Callers fall back to
// local-only mode instead of treating it as a failure.
var ErrNotConfigured = errors.New("remote persistence not configured")

// ErrRecordNotFound is wrapped in a RemoteError when a write matched nothing.
var ErrRecordNotFound = errors.New("record not found")

// RemoteError is a failed call against a configured backend.
type RemoteError struct {
	Op        string
	Err       error
	Transient bool
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Temporary reports whether retrying the call may succeed.
func (e *RemoteError) Temporary() bool { return e.Transient }

// IsRemote reports whether err is, or wraps, a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// Adapter is the remote source of truth for the directory. Implementations
// translate between their wire format and the models package; nothing above
// this interface sees wire documents.
//
// Every method returns ErrNotConfigured when no backend exists, or a
// *RemoteError when the backend rejected or failed the call.
type Adapter interface {
	// ListProviders returns every provider.
	ListProviders(ctx context.Context) ([]models.Provider, error)
	// ListParticipants returns every participant.
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	// ListReviews returns every review.
	ListReviews(ctx context.Context) ([]models.Review, error)
	// ListEnquiries returns every enquiry thread with its messages.
	ListEnquiries(ctx context.Context) ([]models.Enquiry, error)
	// ListBookings returns every booking.
	ListBookings(ctx context.Context) ([]models.Booking, error)

	// CreateProvider inserts a newly registered provider.
	CreateProvider(ctx context.Context, p models.Provider) error
	// CreateParticipant inserts a newly registered participant.
	CreateParticipant(ctx context.Context, p models.Participant) error
	// UpdateProvider applies a partial update to a provider.
	UpdateProvider(ctx context.Context, id string, patch models.ProviderPatch) error
	// UpdateParticipant applies a partial update to a participant.
	UpdateParticipant(ctx context.Context, id string, patch models.ParticipantPatch) error
	// SetFavourites replaces a participant's favourite provider ids.
	SetFavourites(ctx context.Context, participantID string, favourites []string) error
	// UpdateTier overwrites a provider's subscription tier.
	UpdateTier(ctx context.Context, providerID string, tier models.Tier) error
	// IncrementViews adds one to a provider's monthly view counter.
	IncrementViews(ctx context.Context, providerID string) error

	// CreateEnquiry inserts a thread and counts it against the provider.
	CreateEnquiry(ctx context.Context, e models.Enquiry) error
	// AppendMessage adds a message to an active thread.
	AppendMessage(ctx context.Context, enquiryID string, m models.Message) error
	// CloseEnquiry marks a thread closed.
	CloseEnquiry(ctx context.Context, enquiryID string) error

	// CreateBooking inserts a pending booking and counts it against the provider.
	CreateBooking(ctx context.Context, b models.Booking) error
	// UpdateBookingStatus sets a booking's status.
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error

	// CreateReview inserts a review and refreshes the provider's rating.
	CreateReview(ctx context.Context, r models.Review) error
	// RespondReview sets or replaces a review's response.
	RespondReview(ctx context.Context, reviewID string, response models.ReviewResponse) error
}

// Unconfigured is the Adapter used when no backend is configured.
type Unconfigured struct{}

var _ Adapter = Unconfigured{}

func (Unconfigured) ListProviders(context.Context) ([]models.Provider, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) ListParticipants(context.Context) ([]models.Participant, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) ListReviews(context.Context) ([]models.Review, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) ListEnquiries(context.Context) ([]models.Enquiry, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) ListBookings(context.Context) ([]models.Booking, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) CreateProvider(context.Context, models.Provider) error { return ErrNotConfigured }

func (Unconfigured) CreateParticipant(context.Context, models.Participant) error {
	return ErrNotConfigured
}

func (Unconfigured) UpdateProvider(context.Context, string, models.ProviderPatch) error {
	return ErrNotConfigured
}

func (Unconfigured) UpdateParticipant(context.Context, string, models.ParticipantPatch) error {
	return ErrNotConfigured
}

func (Unconfigured) SetFavourites(context.Context, string, []string) error { return ErrNotConfigured }

func (Unconfigured) UpdateTier(context.Context, string, models.Tier) error { return ErrNotConfigured }

func (Unconfigured) IncrementViews(context.Context, string) error { return ErrNotConfigured }

func (Unconfigured) CreateEnquiry(context.Context, models.Enquiry) error { return ErrNotConfigured }

func (Unconfigured) AppendMessage(context.Context, string, models.Message) error {
	return ErrNotConfigured
}

func (Unconfigured) CloseEnquiry(context.Context, string) error { return ErrNotConfigured }

func (Unconfigured) CreateBooking(context.Context, models.Booking) error { return ErrNotConfigured }

func (Unconfigured) UpdateBookingStatus(context.Context, string, models.BookingStatus) error {
	return ErrNotConfigured
}

func (Unconfigured) CreateReview(context.Context, models.Review) error { return ErrNotConfigured }

func (Unconfigured) RespondReview(context.Context, string, models.ReviewResponse) error {
	return ErrNotConfigured
}
