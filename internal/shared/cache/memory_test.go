package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoginLimiter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
		require.NoError(t, store.RecordFailure(ctx, "ada@example.com"))
	}

	allowed, err := store.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)

	// other keys are unaffected
	allowed, err = store.Allow(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, store.Reset(ctx, "ada@example.com"))
	allowed, err = store.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryStore_LoginWindowExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(1, time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.RecordFailure(ctx, "ada@example.com"))
	allowed, _ := store.Allow(ctx, "ada@example.com")
	assert.False(t, allowed)

	now = now.Add(time.Minute)
	allowed, _ = store.Allow(ctx, "ada@example.com")
	assert.True(t, allowed)
}

func TestMemoryStore_Revocation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(5, time.Minute)
	store.now = func() time.Time { return now }

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	revoked, _ = store.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = store.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}

func TestMemoryStore_SweepDropsExpiredEntries(t *testing.T) {
	// Given: failures from many distinct emails, one revoked token that outlives them
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(5, time.Minute)
	store.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		require.NoError(t, store.RecordFailure(ctx, fmt.Sprintf("user%d@example.com", i)))
	}
	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	require.Equal(t, 101, store.Len())

	// When
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Sweep(ctx))

	// Then
	assert.Equal(t, 1, store.Len())
	revoked, _ := store.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)
}
