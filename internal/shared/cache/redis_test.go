package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, maxAttempts int, window time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := newRedisStore(client, maxAttempts, window)
	t.Cleanup(func() { _ = store.Close() })
	return store, server
}

func TestRedisStore_LoginLimiter(t *testing.T) {
	// Given
	ctx := context.Background()
	store, _ := setupRedisStore(t, 3, 15*time.Minute)

	// When: three failures
	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
		require.NoError(t, store.RecordFailure(ctx, "ada@example.com"))
	}

	// Then
	allowed, err := store.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = store.Allow(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, store.Reset(ctx, "ada@example.com"))
	allowed, err = store.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisStore_WindowStartsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	store, server := setupRedisStore(t, 2, time.Minute)

	require.NoError(t, store.RecordFailure(ctx, "ada@example.com"))
	assert.Equal(t, time.Minute, server.TTL(loginKey("ada@example.com")))

	// later failures do not extend the window
	server.FastForward(30 * time.Second)
	require.NoError(t, store.RecordFailure(ctx, "ada@example.com"))
	assert.Equal(t, 30*time.Second, server.TTL(loginKey("ada@example.com")))

	allowed, _ := store.Allow(ctx, "ada@example.com")
	assert.False(t, allowed)

	server.FastForward(30 * time.Second)
	allowed, err := store.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisStore_CounterWithoutTTLGetsOne(t *testing.T) {
	// Given: a counter left behind without expiry
	ctx := context.Background()
	store, server := setupRedisStore(t, 3, time.Minute)
	require.NoError(t, server.Set(loginKey("ada@example.com"), "5"))

	// When
	require.NoError(t, store.RecordFailure(ctx, "ada@example.com"))

	// Then
	got, err := server.Get(loginKey("ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "6", got)
	assert.Equal(t, time.Minute, server.TTL(loginKey("ada@example.com")))
}

func TestRedisStore_Revocation(t *testing.T) {
	ctx := context.Background()
	store, server := setupRedisStore(t, 5, time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// a non-positive ttl stores nothing
	require.NoError(t, store.Revoke(ctx, "jti-2", 0))
	assert.False(t, server.Exists(revokedKey("jti-2")))

	server.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisStore_ErrorsWhenServerDown(t *testing.T) {
	ctx := context.Background()
	store, server := setupRedisStore(t, 3, time.Minute)
	server.Close()

	_, err := store.Allow(ctx, "ada@example.com")
	assert.Error(t, err)
	assert.Error(t, store.Ping(ctx))
}
