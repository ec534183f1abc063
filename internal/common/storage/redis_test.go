package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanos-client/internal/common/config"
	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/storage"
	"loanos-client/internal/session"
	"loanos-client/internal/session/sessiontest"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *storage.RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := storage.NewRedis(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	require.NoError(t, client.Ping(ctx))

	store := storage.NewRedisStore(client, "token")
	assert.Equal(t, "loanos:token", store.Key())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Save(ctx, "jwt"))
	got, err := mr.Get("loanos:token")
	require.NoError(t, err)
	assert.Equal(t, "jwt", got)
	assert.Zero(t, mr.TTL("loanos:token"), "no TTL func means no expiry")

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)

	require.NoError(t, store.Delete(ctx))
	assert.False(t, mr.Exists("loanos:token"))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, store.Delete(ctx), "deleting a missing token is not an error")
}

func TestRedisStore_BlankValueIsNotFound(t *testing.T) {
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set("loanos:token", ""))

	_, err := storage.NewRedisStore(client, "token").Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisStore_EntryExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := storage.NewRedisStore(client, "token")
	store.TTL = session.TTL

	jwt := sessiontest.Token(t, 7, false, time.Now().Add(30*time.Minute))
	require.NoError(t, store.Save(ctx, jwt))

	ttl := mr.TTL("loanos:token")
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)

	mr.FastForward(29 * time.Minute)
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, jwt, token)

	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisStore_NoExpiry(t *testing.T) {
	tests := []struct {
		name string
		ttl  func(string) time.Duration
	}{
		{"negative ttl", func(string) time.Duration { return -time.Second }},
		{"undecodable token", session.TTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, client := setupRedis(t)
			store := storage.NewRedisStore(client, "token")
			store.TTL = tt.ttl

			require.NoError(t, store.Save(context.Background(), "not-a-jwt"))
			assert.True(t, mr.Exists("loanos:token"))
			assert.Zero(t, mr.TTL("loanos:token"))
		})
	}
}

func TestRedisStore_Failures(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := storage.NewRedisStore(client, "token")
	require.NoError(t, store.Save(ctx, "jwt"))

	mr.Close()

	_, err := store.Load(ctx)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeStorageError))
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.True(t, apperrors.Is(store.Save(ctx, "x"), apperrors.ErrCodeStorageError))
	assert.True(t, apperrors.Is(store.Delete(ctx), apperrors.ErrCodeStorageError))
	assert.Error(t, client.Ping(ctx))
}
