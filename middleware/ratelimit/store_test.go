package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		count, resetTime, exists, err := store.Get(ctx, "missing")

		require.NoError(t, err)
		assert.False(t, exists)
		assert.Zero(t, count)
		assert.True(t, resetTime.IsZero())
	})

	t.Run("set and get", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()
		reset := time.Now().Add(time.Minute)

		require.NoError(t, store.Set(ctx, "k", 3, reset))
		count, resetTime, exists, err := store.Get(ctx, "k")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, 3, count)
		assert.Equal(t, reset, resetTime)
	})

	t.Run("expired entries are invisible", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", 3, time.Now().Add(-time.Second)))
		_, _, exists, err := store.Get(ctx, "k")

		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("increment", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()
		reset := time.Now().Add(time.Minute)

		first, err := store.Increment(ctx, "k", reset)
		require.NoError(t, err)
		second, err := store.Increment(ctx, "k", reset)
		require.NoError(t, err)

		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)
	})

	t.Run("increment restarts expired window", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", 9, time.Now().Add(-time.Second)))
		count, err := store.Increment(ctx, "k", time.Now().Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("reset", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", 1, time.Now().Add(time.Minute)))
		require.NoError(t, store.Reset(ctx, "k"))
		require.NoError(t, store.Reset(ctx, "never-set"))

		_, _, exists, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("concurrent increments", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()
		reset := time.Now().Add(time.Minute)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.Increment(ctx, "k", reset)
			}()
		}
		wg.Wait()

		count, _, _, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 50, count)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewMemoryStore()
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store := NewRedisStoreFromClient(nil, "foodiehub:")

	assert.Equal(t, "foodiehub:rate_limit:1.2.3.4", store.key("rate_limit:1.2.3.4"))
}
