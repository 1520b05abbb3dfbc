package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"carelink/database/seed"
	"carelink/models"
	"carelink/services/directory"
	"carelink/services/store"
	"carelink/utils"
)

func newTestService(t *testing.T) (*Service, *directory.Service) {
	t.Helper()
	accounts, err := SeedAccounts(bcrypt.MinCost)
	require.NoError(t, err)

	st := store.New(store.Reduce(store.NewState(0), store.Hydrate{Collections: seed.Collections()}))
	dir := directory.NewService(st, nil, nil, nil, nil)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	return NewService(accounts, dir, tokens, nil, bcrypt.MinCost), dir
}

func TestLoginOpensSession(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "Alex@Example.com", "participant123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "part-alex", res.Session.ID)
	assert.Nil(t, res.Session.Participant)

	state := dir.State()
	require.NotNil(t, state.Session)
	require.NotNil(t, state.Session.Participant)
	assert.Equal(t, []string{"prov-harbour-therapy"}, state.Session.Participant.Favourites)

	sess, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, sess.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "alex@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "participant123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, dir.State().Session)
}

func TestSecondLoginSupersedesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alex@example.com", "participant123")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "hello@harbourallied.example", "provider123")
	require.NoError(t, err)

	_, err = svc.Authenticate(first.Token)
	assert.ErrorIs(t, err, directory.ErrNotAuthenticated)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "admin@carelink.example", "admin123")
	require.NoError(t, err)
	state := svc.Logout(ctx)
	assert.Nil(t, state.Session)
	assert.Equal(t, store.LandingFrame, state.Route)

	_, err = svc.Authenticate(res.Token)
	assert.ErrorIs(t, err, directory.ErrNotAuthenticated)
}

func TestRegisterParticipantThenLogin(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	in := directory.ParticipantRegistration{Name: "Jo Bloggs", Email: "jo@example.com"}
	res, err := svc.RegisterParticipant(ctx, in, "longenough")
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, res.Session.Role)

	_, ok := dir.State().Participant(res.Session.ID)
	assert.True(t, ok)

	svc.Logout(ctx)
	again, err := svc.Login(ctx, "jo@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, again.Session.ID)

	_, err = svc.RegisterParticipant(ctx, in, "longenough")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterProviderValidation(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterProvider(ctx, directory.ProviderRegistration{Name: "X", Email: "x@example.com", Categories: []string{"support-work"}}, "short")
	assert.ErrorIs(t, err, directory.ErrValidation)

	_, err = svc.RegisterProvider(ctx, directory.ProviderRegistration{Name: "X", Email: "x@example.com"}, "longenough")
	assert.ErrorIs(t, err, directory.ErrValidation)
	assert.Nil(t, dir.State().Session)

	_, err = svc.accounts.FindByEmail(ctx, "x@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRegisterHeldEmailLeavesDirectoryUntouched(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.accounts.Reserve(ctx, "jo@example.com"))
	before := dir.State()

	in := directory.ParticipantRegistration{Name: "Jo Park", Email: "jo@example.com"}
	_, err := svc.RegisterParticipant(ctx, in, "longenough")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, before, dir.State())
	assert.Nil(t, dir.State().Session)

	svc.accounts.Release(ctx, "jo@example.com")
	res, err := svc.RegisterParticipant(ctx, in, "longenough")
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, dir.State().Session.ID)
}

func TestFailedRegistrationReleasesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterProvider(ctx, directory.ProviderRegistration{Name: "X", Email: "x@example.com"}, "longenough")
	require.ErrorIs(t, err, directory.ErrValidation)

	assert.NoError(t, svc.accounts.Reserve(ctx, "X@example.com"))
	assert.ErrorIs(t, svc.accounts.Reserve(ctx, "x@example.com"), ErrEmailTaken)
}

func TestRestoreIssuesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, res)

	_, err = svc.Login(ctx, "priya@example.com", "participant123")
	require.NoError(t, err)
	res, err = svc.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "part-priya", res.Session.ID)
}
