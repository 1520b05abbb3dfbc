package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"carelink/database/repository"
	"carelink/database/repository/snapshot"
	"carelink/database/seed"
	"carelink/metrics"
	"carelink/models"
	"carelink/services/store"
)

var now = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

const (
	alex      = "part-alex"
	priya     = "part-priya"
	premiumID = "prov-harbour-therapy"
	proID     = "prov-brightpath"
	freeID    = "prov-clearvoice"
)

var errUnavailable = &repository.RemoteError{Op: "test", Err: errors.New("connection refused"), Transient: true}

type DirectorySuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.Store
	remote  *mockAdapter
	snaps   *snapshot.MemoryStore
	metrics *metrics.Metrics
	svc     *Service
	ids     int
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) SetupTest() {
	s.ctx = context.Background()
	s.remote = nil
	s.build(nil)
}

// build replaces the service; a nil adapter runs local-only.
func (s *DirectorySuite) build(remote repository.Adapter) {
	s.store = store.New(store.Reduce(store.NewState(0), store.Hydrate{Collections: seed.Collections()}))
	s.snaps = snapshot.NewMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.ids = 0
	s.svc = NewService(s.store, remote, s.snaps, zap.NewNop(), s.metrics,
		WithClock(func() time.Time { return now }),
		WithIDs(func() string {
			s.ids++
			return fmt.Sprintf("id-%d", s.ids)
		}))
}

func (s *DirectorySuite) withRemote() *mockAdapter {
	s.remote = new(mockAdapter)
	s.build(s.remote)
	return s.remote
}

func (s *DirectorySuite) login(id string, role models.Role) {
	_, err := s.svc.Login(s.ctx, models.Session{ID: id, Role: role, Name: "test " + id})
	s.Require().NoError(err)
}

func (s *DirectorySuite) TearDownTest() {
	if s.remote != nil {
		s.remote.AssertExpectations(s.T())
	}
}

func (s *DirectorySuite) TestLocalOnlyEnquiryFlow() {
	s.login(alex, models.RoleParticipant)
	enq, err := s.svc.SendEnquiry(s.ctx, SendEnquiryInput{ProviderID: freeID, Subject: "Telehealth", Message: "Do you offer telehealth sessions?"})
	s.Require().NoError(err)
	s.Equal("id-1", enq.ID)
	s.Equal(now, enq.CreatedAt)

	s.login(freeID, models.RoleProvider)
	msg, err := s.svc.ReplyEnquiry(s.ctx, enq.ID, ReplyInput{Text: "Yes, every Thursday."})
	s.Require().NoError(err)
	s.Equal(models.SenderProvider, msg.Sender)

	_, err = s.svc.CloseEnquiry(s.ctx, enq.ID)
	s.Require().NoError(err)
	_, err = s.svc.CloseEnquiry(s.ctx, enq.ID)
	s.Require().NoError(err)

	_, err = s.svc.ReplyEnquiry(s.ctx, enq.ID, ReplyInput{Text: "One more thing"})
	s.ErrorIs(err, ErrEnquiryClosed)

	got, _ := s.svc.State().Enquiry(enq.ID)
	s.Len(got.Messages, 2)
	s.Equal(models.EnquiryClosed, got.Status)
	p, _ := s.svc.State().Provider(freeID)
	s.Equal(5, p.Stats.Enquiries)
}

func (s *DirectorySuite) TestValidationRejectsBeforeDispatch() {
	s.login(alex, models.RoleParticipant)
	rev := s.store.Revision()

	_, err := s.svc.SendEnquiry(s.ctx, SendEnquiryInput{ProviderID: freeID, Subject: "Hi", Message: "short"})
	s.ErrorIs(err, ErrValidation)
	s.Contains(err.Error(), "Message")
	s.Equal(rev, s.store.Revision())
}

func (s *DirectorySuite) TestRemoteWriteThenDispatch() {
	remote := s.withRemote()
	s.login(alex, models.RoleParticipant)

	remote.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
		return b.ProviderID == premiumID && b.ParticipantID == alex && b.Status == models.BookingPending
	})).Return(nil).Once()

	booking, err := s.svc.CreateBooking(s.ctx, BookingInput{
		ProviderID: premiumID, Service: "Initial assessment", Date: "2024-06-10", Time: "09:30", Duration: 60,
	})
	s.Require().NoError(err)

	got, ok := s.svc.State().Booking(booking.ID)
	s.True(ok)
	s.Equal(models.BookingPending, got.Status)
}

func (s *DirectorySuite) TestRemoteFailureLeavesStoreUntouched() {
	remote := s.withRemote()
	s.login(alex, models.RoleParticipant)
	before, rev := s.store.Snapshot()

	remote.On("SetFavourites", mock.Anything, alex, mock.Anything).Return(errUnavailable).Once()

	_, err := s.svc.ToggleFavourite(s.ctx, freeID)
	s.Require().Error(err)
	s.True(repository.IsRemote(err))
	s.False(errors.Is(err, repository.ErrNotConfigured))

	after, afterRev := s.store.Snapshot()
	s.Equal(rev, afterRev)
	s.Equal(before, after)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RemoteFailures.WithLabelValues("set_favourites")))
}

func (s *DirectorySuite) TestToggleFavouriteWritesNewSet() {
	remote := s.withRemote()
	s.login(alex, models.RoleParticipant)

	remote.On("SetFavourites", mock.Anything, alex, []string{premiumID, freeID}).Return(nil).Once()
	state, err := s.svc.ToggleFavourite(s.ctx, freeID)
	s.Require().NoError(err)

	p, _ := state.Participant(alex)
	s.ElementsMatch([]string{premiumID, freeID}, p.Favourites)
	s.ElementsMatch(p.Favourites, state.Session.Participant.Favourites)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Actions.WithLabelValues("TOGGLE_FAVOURITE")))
}

func (s *DirectorySuite) TestToggleFavouriteSessionChecks() {
	_, err := s.svc.ToggleFavourite(s.ctx, freeID)
	s.ErrorIs(err, ErrNotAuthenticated)

	s.login(proID, models.RoleProvider)
	_, err = s.svc.ToggleFavourite(s.ctx, freeID)
	s.ErrorIs(err, ErrForbidden)

	s.login(alex, models.RoleParticipant)
	_, err = s.svc.ToggleFavourite(s.ctx, "prov-missing")
	s.ErrorIs(err, ErrNotFound)
}

func (s *DirectorySuite) TestDirectBookingNeedsPremium() {
	remote := s.withRemote()
	s.login(alex, models.RoleParticipant)

	_, err := s.svc.CreateBooking(s.ctx, BookingInput{ProviderID: proID, Service: "Support", Date: "2024-06-10", Time: "09:30", Duration: 60})
	s.ErrorIs(err, ErrFeatureUnavailable)
	remote.AssertNotCalled(s.T(), "CreateBooking", mock.Anything, mock.Anything)

	_, err = s.svc.CreateBooking(s.ctx, BookingInput{ProviderID: premiumID, Service: "Support", Date: "10/06/2024", Time: "09:30", Duration: 60})
	s.ErrorIs(err, ErrValidation)
}

func (s *DirectorySuite) TestBookingStatusRules() {
	s.login(alex, models.RoleParticipant)
	booking, err := s.svc.CreateBooking(s.ctx, BookingInput{ProviderID: premiumID, Service: "Hydro", Date: "2024-06-11", Time: "14:00", Duration: 45})
	s.Require().NoError(err)

	_, err = s.svc.UpdateBookingStatus(s.ctx, booking.ID, models.BookingConfirmed)
	s.ErrorIs(err, ErrForbidden)

	s.login(premiumID, models.RoleProvider)
	_, err = s.svc.UpdateBookingStatus(s.ctx, booking.ID, "rescheduled")
	s.ErrorIs(err, ErrValidation)
	state, err := s.svc.UpdateBookingStatus(s.ctx, booking.ID, models.BookingConfirmed)
	s.Require().NoError(err)
	got, _ := state.Booking(booking.ID)
	s.Equal(models.BookingConfirmed, got.Status)

	s.login(proID, models.RoleProvider)
	_, err = s.svc.CancelBooking(s.ctx, booking.ID)
	s.ErrorIs(err, ErrForbidden)
}

func (s *DirectorySuite) TestCancelTwiceIsIdempotent() {
	s.login(alex, models.RoleParticipant)
	booking, err := s.svc.CreateBooking(s.ctx, BookingInput{ProviderID: premiumID, Service: "Hydro", Date: "2024-06-11", Time: "14:00", Duration: 45})
	s.Require().NoError(err)

	once, err := s.svc.CancelBooking(s.ctx, booking.ID)
	s.Require().NoError(err)
	twice, err := s.svc.CancelBooking(s.ctx, booking.ID)
	s.Require().NoError(err)
	s.Equal(once, twice)
}

func (s *DirectorySuite) TestReviewResponses() {
	s.login(alex, models.RoleParticipant)
	review, err := s.svc.SubmitReview(s.ctx, ReviewInput{ProviderID: freeID, Rating: 4, Text: "Very thorough assessment."})
	s.Require().NoError(err)
	s.Equal("test "+alex, review.ParticipantName)

	s.login(freeID, models.RoleProvider)
	_, err = s.svc.RespondReview(s.ctx, review.ID, RespondInput{Text: "Thanks!"})
	s.ErrorIs(err, ErrFeatureUnavailable)

	_, err = s.svc.UpgradeTier(s.ctx, freeID, models.TierPro)
	s.Require().NoError(err)
	_, err = s.svc.RespondReview(s.ctx, review.ID, RespondInput{Text: "Thanks!"})
	s.Require().NoError(err)
	state, err := s.svc.RespondReview(s.ctx, review.ID, RespondInput{Text: "Thank you, Alex."})
	s.Require().NoError(err)

	got, _ := state.Review(review.ID)
	s.Require().NotNil(got.Response)
	s.Equal("Thank you, Alex.", got.Response.Text)

	s.login(proID, models.RoleProvider)
	_, err = s.svc.RespondReview(s.ctx, review.ID, RespondInput{Text: "Not mine"})
	s.ErrorIs(err, ErrForbidden)
}

func (s *DirectorySuite) TestProviderUpdateHonoursTierLimit() {
	s.login(freeID, models.RoleProvider)
	long := strings.Repeat("a", 151)
	_, err := s.svc.UpdateProvider(s.ctx, freeID, models.ProviderPatch{Description: &long})
	s.ErrorIs(err, ErrValidation)

	name := "ClearVoice Speech & Language"
	state, err := s.svc.UpdateProvider(s.ctx, freeID, models.ProviderPatch{Name: &name})
	s.Require().NoError(err)
	p, _ := state.Provider(freeID)
	s.Equal(name, p.Name)
	s.Equal(p, *state.Session.Provider)
	s.Equal(name, state.Session.Name)

	_, err = s.svc.UpdateProvider(s.ctx, proID, models.ProviderPatch{Name: &name})
	s.ErrorIs(err, ErrForbidden)

	bad := []string{"astrology"}
	_, err = s.svc.UpdateProvider(s.ctx, freeID, models.ProviderPatch{Categories: &bad})
	s.ErrorIs(err, ErrValidation)
}

func (s *DirectorySuite) TestParticipantUpdate() {
	s.login(priya, models.RoleParticipant)
	plan := "self-funded"
	_, err := s.svc.UpdateParticipant(s.ctx, priya, models.ParticipantPatch{PlanType: &plan})
	s.ErrorIs(err, ErrValidation)

	plan = models.PlanNDIAManaged
	state, err := s.svc.UpdateParticipant(s.ctx, priya, models.ParticipantPatch{PlanType: &plan})
	s.Require().NoError(err)
	s.Equal(plan, state.Session.Participant.PlanType)

	_, err = s.svc.UpdateParticipant(s.ctx, alex, models.ParticipantPatch{PlanType: &plan})
	s.ErrorIs(err, ErrForbidden)
}

func (s *DirectorySuite) TestSnapshotRestore() {
	s.login(alex, models.RoleParticipant)
	_, err := s.svc.SetTheme(s.ctx, models.ThemeDark)
	s.Require().NoError(err)

	// a fresh process sharing the snapshot store
	snaps := s.snaps
	st := store.New(store.Reduce(store.NewState(0), store.Hydrate{Collections: seed.Collections()}))
	restored := NewService(st, nil, snaps, nil, nil)
	state, err := restored.RestoreSession(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(state.Session)
	s.Equal(alex, state.Session.ID)
	s.Equal(models.ThemeDark, state.Theme)

	restored.Logout(s.ctx)
	snap, err := snaps.Load(s.ctx)
	s.Require().NoError(err)
	s.Nil(snap.Session)
	s.Equal(models.ThemeDark, snap.Theme)
}

func (s *DirectorySuite) TestRestoreWithoutSnapshot() {
	state, err := s.svc.RestoreSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(state.Session)
}

func (s *DirectorySuite) TestRegisterParticipant() {
	p, err := s.svc.RegisterParticipant(s.ctx, ParticipantRegistration{Name: "Jo Bloggs", Email: "jo@example.com", PlanType: models.PlanManaged})
	s.Require().NoError(err)

	state := s.svc.State()
	s.Require().NotNil(state.Session)
	s.Equal(p.ID, state.Session.ID)
	s.Equal(models.RoleParticipant, state.Session.Role)
	_, ok := state.Participant(p.ID)
	s.True(ok)

	_, err = s.svc.RegisterParticipant(s.ctx, ParticipantRegistration{Name: "No Email"})
	s.ErrorIs(err, ErrValidation)
}

func (s *DirectorySuite) TestRegisterProviderStartsFree() {
	p, err := s.svc.RegisterProvider(s.ctx, ProviderRegistration{
		Name: "New Horizons", Email: "hi@newhorizons.example", Categories: []string{"support-work"},
	})
	s.Require().NoError(err)
	s.Equal(models.TierFree, p.Tier)
	s.Equal(models.RoleProvider, s.svc.State().Session.Role)
}

func (s *DirectorySuite) TestHydrateFallsBackWhenNotConfigured() {
	s.store = store.New(store.NewState(0))
	svc := NewService(s.store, repository.Unconfigured{}, nil, nil, nil)
	state, err := svc.Hydrate(s.ctx, seed.Collections())
	s.Require().NoError(err)
	s.Len(state.Providers, len(seed.Collections().Providers))
}

func (s *DirectorySuite) TestHydrateRemoteFailure() {
	remote := s.withRemote()
	before, rev := s.store.Snapshot()
	remote.On("ListProviders", mock.Anything).Return(nil, errUnavailable).Once()

	_, err := s.svc.Hydrate(s.ctx, models.Collections{})
	s.Require().Error(err)

	after, afterRev := s.store.Snapshot()
	s.Equal(rev, afterRev)
	s.Equal(before, after)
}

func (s *DirectorySuite) TestHydrateFromRemote() {
	remote := s.withRemote()
	remote.On("ListProviders", mock.Anything).Return([]models.Provider{{ID: "remote-1", Name: "Remote"}}, nil).Once()
	remote.On("ListParticipants", mock.Anything).Return([]models.Participant{}, nil).Once()
	remote.On("ListReviews", mock.Anything).Return([]models.Review{}, nil).Once()
	remote.On("ListEnquiries", mock.Anything).Return([]models.Enquiry{}, nil).Once()
	remote.On("ListBookings", mock.Anything).Return([]models.Booking{}, nil).Once()

	state, err := s.svc.Hydrate(s.ctx, seed.Collections())
	s.Require().NoError(err)
	s.Len(state.Providers, 1)
	s.Empty(state.Participants)
}

func (s *DirectorySuite) TestRecordViewAndNavigation() {
	_, err := s.svc.RecordView(s.ctx, proID)
	s.Require().NoError(err)
	p, _ := s.svc.State().Provider(proID)
	s.Equal(289, p.Stats.Views)

	_, err = s.svc.Navigate(s.ctx, models.Frame{Route: models.RouteProvider, Params: map[string]string{"id": proID}})
	s.Require().NoError(err)
	_, err = s.svc.Navigate(s.ctx, models.Frame{})
	s.ErrorIs(err, ErrValidation)
	state := s.svc.Back(s.ctx)
	s.Equal(models.RouteHome, state.Route.Route)
	s.Equal(state, s.svc.Back(s.ctx))
}

func (s *DirectorySuite) TestUIState() {
	_, err := s.svc.SetFilters(s.ctx, "physio", models.FilterSet{MinRating: 7})
	s.ErrorIs(err, ErrValidation)
	_, err = s.svc.SetFilters(s.ctx, "physio", models.FilterSet{MinRating: 4})
	s.Require().NoError(err)
	_, err = s.svc.SelectProvider(s.ctx, "missing")
	s.ErrorIs(err, ErrNotFound)
	_, err = s.svc.SetDashboardTab(s.ctx, "secret")
	s.ErrorIs(err, ErrValidation)
	state, err := s.svc.SetDashboardTab(s.ctx, "reviews")
	s.Require().NoError(err)
	s.Equal("reviews", state.DashboardTab)
	s.Equal("physio", state.Query)
}

func (s *DirectorySuite) TestAnalyticsGate() {
	s.login(freeID, models.RoleProvider)
	_, err := s.svc.Analytics(freeID)
	s.ErrorIs(err, ErrFeatureUnavailable)

	s.login(premiumID, models.RoleProvider)
	a, err := s.svc.Analytics(premiumID)
	s.Require().NoError(err)
	s.Equal(2, a.RatingDistribution[4])
	s.Equal(1, a.Responded)
	s.InDelta(18.0/412*100, a.ConversionRate, 1e-9)

	_, err = s.svc.Analytics(proID)
	s.ErrorIs(err, ErrForbidden)
}

func (s *DirectorySuite) TestConcurrentTogglesAreSerialized() {
	s.login(alex, models.RoleParticipant)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.svc.ToggleFavourite(s.ctx, proID)
		}()
	}
	wg.Wait()

	p, _ := s.svc.State().Participant(alex)
	s.ElementsMatch([]string{premiumID}, p.Favourites)
}
