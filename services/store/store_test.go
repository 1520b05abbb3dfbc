package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/models"
)

func TestStoreDispatchSerializesToggles(t *testing.T) {
	st := participantSession(fixtureState(), "u1")
	s := New(st)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(ToggleFavourite{ProviderID: "p1"})
		}()
	}
	wg.Wait()

	// an even number of toggles leaves the set unchanged
	final := s.State()
	u1, _ := final.Participant("u1")
	assert.ElementsMatch(t, []string{"p2"}, u1.Favourites)
	assert.Equal(t, uint64(50), s.Revision())
}

func TestStoreSubscribe(t *testing.T) {
	s := New(fixtureState())

	var seen []uint64
	unsubscribe := s.Subscribe(func(state State, revision uint64) {
		seen = append(seen, revision)
	})
	s.Dispatch(SetTheme{Theme: models.ThemeDark})
	s.Dispatch(SetTheme{Theme: models.ThemeLight})
	unsubscribe()
	s.Dispatch(SetTheme{Theme: models.ThemeDark})

	require.Equal(t, []uint64{1, 2}, seen)
	state, rev := s.Snapshot()
	assert.Equal(t, uint64(3), rev)
	assert.Equal(t, models.ThemeDark, state.Theme)
}
