package directory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carelink/models"
)

type mockAdapter struct {
	mock.Mock
}

func (m *mockAdapter) ListProviders(ctx context.Context) ([]models.Provider, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Provider)
	return v, args.Error(1)
}

func (m *mockAdapter) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Participant)
	return v, args.Error(1)
}

func (m *mockAdapter) ListReviews(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Review)
	return v, args.Error(1)
}

func (m *mockAdapter) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Enquiry)
	return v, args.Error(1)
}

func (m *mockAdapter) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Booking)
	return v, args.Error(1)
}

func (m *mockAdapter) CreateProvider(ctx context.Context, p models.Provider) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockAdapter) CreateParticipant(ctx context.Context, p models.Participant) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockAdapter) UpdateProvider(ctx context.Context, id string, patch models.ProviderPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockAdapter) UpdateParticipant(ctx context.Context, id string, patch models.ParticipantPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockAdapter) SetFavourites(ctx context.Context, participantID string, favourites []string) error {
	return m.Called(ctx, participantID, favourites).Error(0)
}

func (m *mockAdapter) UpdateTier(ctx context.Context, providerID string, tier models.Tier) error {
	return m.Called(ctx, providerID, tier).Error(0)
}

func (m *mockAdapter) IncrementViews(ctx context.Context, providerID string) error {
	return m.Called(ctx, providerID).Error(0)
}

func (m *mockAdapter) CreateEnquiry(ctx context.Context, e models.Enquiry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockAdapter) AppendMessage(ctx context.Context, enquiryID string, msg models.Message) error {
	return m.Called(ctx, enquiryID, msg).Error(0)
}

func (m *mockAdapter) CloseEnquiry(ctx context.Context, enquiryID string) error {
	return m.Called(ctx, enquiryID).Error(0)
}

func (m *mockAdapter) CreateBooking(ctx context.Context, b models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockAdapter) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	return m.Called(ctx, bookingID, status).Error(0)
}

func (m *mockAdapter) CreateReview(ctx context.Context, r models.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockAdapter) RespondReview(ctx context.Context, reviewID string, response models.ReviewResponse) error {
	return m.Called(ctx, reviewID, response).Error(0)
}
