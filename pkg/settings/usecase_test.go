package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/repository/memory"
	"github.com/artem13815/microbridge/pkg/settings"
)

func TestGetDefaults(t *testing.T) {
	svc := settings.NewService(memory.NewSettingsRepository(), time.Millisecond, zap.NewNop())
	got, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)
}

func TestMalformedStoredSettingsFallBackToDefaults(t *testing.T) {
	repo := memory.NewSettingsRepository()
	id := uuid.New()
	require.NoError(t, repo.Save(context.Background(), id, `{"notifications": {"email": tru`))

	svc := settings.NewService(repo, time.Millisecond, zap.NewNop())
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)
}

func TestStoredSettingsKeepDefaultsForMissingKeys(t *testing.T) {
	repo := memory.NewSettingsRepository()
	id := uuid.New()
	require.NoError(t, repo.Save(context.Background(), id, `{"preferences": {"theme": "dark"}}`))

	svc := settings.NewService(repo, time.Millisecond, zap.NewNop())
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Preferences.Theme)
	assert.Equal(t, "USD", got.Preferences.Currency)
	assert.True(t, got.Notifications.Email)
}

func TestUpdateValidatesAgainstSchema(t *testing.T) {
	svc := settings.NewService(memory.NewSettingsRepository(), time.Hour, zap.NewNop())
	id := uuid.New()
	ctx := context.Background()

	for _, raw := range []string{
		`{"privacy": {"profileVisibility": "everyone"}}`,
		`{"preferences": {"currency": "BTC"}}`,
		`{"notifications": {"sms": true}}`,
		`{"theme": "dark"}`,
		`not json`,
	} {
		_, err := svc.Update(ctx, id, []byte(raw))
		assert.ErrorIs(t, err, settings.ErrInvalidSettings, raw)
	}

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)
	require.NoError(t, svc.Flush(ctx))
}

func TestUpdateIsDebounced(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := memory.NewSettingsRepository()
	svc := settings.NewService(repo, time.Hour, zap.NewNop())
	id := uuid.New()
	ctx := context.Background()

	_, err := svc.Update(ctx, id, []byte(`{"preferences": {"theme": "dark"}}`))
	require.NoError(t, err)
	got, err := svc.Update(ctx, id, []byte(`{"privacy": {"showEmail": true}}`))
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Preferences.Theme)
	assert.True(t, got.Privacy.ShowEmail)
	assert.Equal(t, "employers", got.Privacy.ProfileVisibility)

	assert.Zero(t, repo.Saves())
	require.NoError(t, svc.Flush(ctx))
	assert.Equal(t, 1, repo.Saves())

	fresh := settings.NewService(repo, time.Hour, zap.NewNop())
	reloaded, err := fresh.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestDebouncedWriteFires(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := memory.NewSettingsRepository()
	svc := settings.NewService(repo, 10*time.Millisecond, zap.NewNop())
	_, err := svc.Update(context.Background(), uuid.New(), []byte(`{"notifications": {"weeklyDigest": true}}`))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return repo.Saves() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, svc.Flush(context.Background()))
	assert.Equal(t, 1, repo.Saves())
}
