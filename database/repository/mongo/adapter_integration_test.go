//go:build integration

package mongoRepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"carelink/database/repository"
	"carelink/models"
	"carelink/utils/testutil"
)

type AdapterSuite struct {
	suite.Suite
	adapter *Adapter
	ctx     context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.ctx = context.Background()
	db := testutil.NewMongoDatabase(s.T(), "carelink_test")
	s.adapter = NewAdapter(db)
	s.Require().NoError(s.adapter.EnsureIndexes(s.ctx))
	s.Require().NoError(s.adapter.CreateProvider(s.ctx, sampleProvider()))
}

func (s *AdapterSuite) provider() models.Provider {
	providers, err := s.adapter.ListProviders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(providers, 1)
	return providers[0]
}

func (s *AdapterSuite) TestListEmptyCollectionIsNotNil() {
	bookings, err := s.adapter.ListBookings(s.ctx)
	s.Require().NoError(err)
	s.NotNil(bookings)
	s.Empty(bookings)
}

func (s *AdapterSuite) TestCountersAndTier() {
	s.Require().NoError(s.adapter.IncrementViews(s.ctx, "prov-1"))
	s.Require().NoError(s.adapter.UpdateTier(s.ctx, "prov-1", models.TierPremium))
	s.Require().NoError(s.adapter.CreateBooking(s.ctx, models.Booking{ID: "b1", ProviderID: "prov-1", ParticipantID: "u1", Status: models.BookingConfirmed}))

	p := s.provider()
	s.Equal(41, p.Stats.Views)
	s.Equal(2, p.Stats.Bookings)
	s.Equal(models.TierPremium, p.Tier)

	bookings, err := s.adapter.ListBookings(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.BookingPending, bookings[0].Status)
}

func (s *AdapterSuite) TestReviewRefreshesRating() {
	s.Require().NoError(s.adapter.CreateReview(s.ctx, models.Review{ID: "r1", ProviderID: "prov-1", Rating: 1}))
	p := s.provider()
	s.Equal(13, p.ReviewCount)
	s.InDelta(4.3, p.Rating, 0.05)

	at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.adapter.RespondReview(s.ctx, "r1", models.ReviewResponse{Text: "Sorry to hear", Date: at}))
	reviews, err := s.adapter.ListReviews(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(reviews[0].Response)
	s.Equal("Sorry to hear", reviews[0].Response.Text)
}

func (s *AdapterSuite) TestAppendToClosedEnquiryReportsNotFound() {
	e := models.Enquiry{ID: "e1", ParticipantID: "u1", ProviderID: "prov-1", Status: models.EnquiryActive,
		Messages: []models.Message{{ID: "m1", Sender: models.SenderParticipant, Text: "Hi", SentAt: created}}}
	s.Require().NoError(s.adapter.CreateEnquiry(s.ctx, e))
	s.Require().NoError(s.adapter.AppendMessage(s.ctx, "e1", models.Message{ID: "m2", Sender: models.SenderProvider, Text: "Hello", SentAt: created.Add(time.Minute)}))
	s.Require().NoError(s.adapter.CloseEnquiry(s.ctx, "e1"))

	err := s.adapter.AppendMessage(s.ctx, "e1", models.Message{ID: "m3", Text: "Late"})
	s.True(repository.IsRemote(err))
	s.ErrorIs(err, repository.ErrRecordNotFound)

	enquiries, err := s.adapter.ListEnquiries(s.ctx)
	s.Require().NoError(err)
	s.Len(enquiries[0].Messages, 2)
	s.Equal(models.EnquiryClosed, enquiries[0].Status)
}

func (s *AdapterSuite) TestCreateForMissingProviderWritesNothing() {
	e := models.Enquiry{ID: "e-orphan", ParticipantID: "u1", ProviderID: "prov-missing", Status: models.EnquiryActive,
		Messages: []models.Message{{ID: "m1", Sender: models.SenderParticipant, Text: "Hi", SentAt: created}}}
	err := s.adapter.CreateEnquiry(s.ctx, e)
	s.True(repository.IsRemote(err))
	s.ErrorIs(err, repository.ErrRecordNotFound)

	err = s.adapter.CreateBooking(s.ctx, models.Booking{ID: "b-orphan", ProviderID: "prov-missing", ParticipantID: "u1"})
	s.ErrorIs(err, repository.ErrRecordNotFound)
	err = s.adapter.CreateReview(s.ctx, models.Review{ID: "r-orphan", ProviderID: "prov-missing", Rating: 4})
	s.ErrorIs(err, repository.ErrRecordNotFound)

	enquiries, err := s.adapter.ListEnquiries(s.ctx)
	s.Require().NoError(err)
	s.Empty(enquiries)
	bookings, err := s.adapter.ListBookings(s.ctx)
	s.Require().NoError(err)
	s.Empty(bookings)
	reviews, err := s.adapter.ListReviews(s.ctx)
	s.Require().NoError(err)
	s.Empty(reviews)

	s.Require().NoError(s.adapter.CreateEnquiry(s.ctx, models.Enquiry{ID: "e-orphan", ParticipantID: "u1", ProviderID: "prov-1",
		Status: models.EnquiryActive, Messages: e.Messages}))
}

func (s *AdapterSuite) TestDuplicateIDIsRemoteError() {
	err := s.adapter.CreateProvider(s.ctx, sampleProvider())
	require.Error(s.T(), err)
	assert.True(s.T(), repository.IsRemote(err))
}
