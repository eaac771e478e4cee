package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/wizard"
)

func setup(t *testing.T) (*miniredis.Miniredis, *SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewSessionStore(client, 30*time.Minute)
}

func TestSessionRoundTrip(t *testing.T) {
	mr, store := setup(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, onboarding.ErrNoSession)

	c := wizard.New()
	require.NoError(t, c.Update(profile.IdentityPatch{FirstName: profile.String("Ada")}))
	c.Next()
	sess := onboarding.Session{UserID: id, State: c.State(), StartedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sess.State, got.State)
	assert.True(t, sess.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, 30*time.Minute, mr.TTL(keyPrefix+id.String()))

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, onboarding.ErrNoSession)
}

func TestSessionExpires(t *testing.T) {
	mr, store := setup(t)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, store.Save(ctx, onboarding.Session{UserID: id, State: wizard.New().State()}))
	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, onboarding.ErrNoSession)
}

func TestCorruptSessionIsAnError(t *testing.T) {
	mr, store := setup(t)
	id := uuid.New()
	require.NoError(t, mr.Set(keyPrefix+id.String(), "{"))

	_, err := store.Get(context.Background(), id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, onboarding.ErrNoSession)
}
