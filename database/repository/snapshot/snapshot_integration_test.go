//go:build integration

package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/models"
	"carelink/utils/testutil"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	r := NewRedisStore(testutil.NewRedisClient(t), time.Hour)

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	want := Snapshot{Session: &models.Session{ID: "p1", Role: models.RoleProvider, Name: "Harbour"}, Theme: models.ThemeLight}
	require.NoError(t, r.Save(ctx, want))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, r.Clear(ctx))
	_, err = r.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
