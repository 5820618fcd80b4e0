package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/revocation"
	"github.com/stretchr/testify/require"
)

// testCacheContract runs the behaviour every Cache must share against c.
// Keys are prefixed so a shared Redis instance stays clean between runs.
func testCacheContract(t *testing.T, c revocation.Cache) {
	ctx := context.Background()
	p := t.Name() + ":"

	t.Run("set get exists", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, p+"a", "1", time.Minute))

		v, err := c.Get(ctx, p+"a")
		require.NoError(t, err)
		require.Equal(t, "1", v)

		ok, err := c.Exists(ctx, p+"a")
		require.NoError(t, err)
		require.True(t, ok)

		_, err = c.Get(ctx, p+"missing")
		require.ErrorIs(t, err, revocation.ErrMiss)

		ok, err = c.Exists(ctx, p+"missing")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("setnx has one winner", func(t *testing.T) {
		won, err := c.SetNX(ctx, p+"nx", "first", time.Minute)
		require.NoError(t, err)
		require.True(t, won)

		won, err = c.SetNX(ctx, p+"nx", "second", time.Minute)
		require.NoError(t, err)
		require.False(t, won)

		v, err := c.Get(ctx, p+"nx")
		require.NoError(t, err)
		require.Equal(t, "first", v)
	})

	t.Run("ttl", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, p+"ttl", "1", time.Minute))
		ttl, err := c.TTL(ctx, p+"ttl")
		require.NoError(t, err)
		require.Greater(t, ttl, 50*time.Second)
		require.LessOrEqual(t, ttl, time.Minute)

		ttl, err = c.TTL(ctx, p+"missing")
		require.NoError(t, err)
		require.Negative(t, ttl)
	})

	t.Run("keys and delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, p+"k:1", "1", time.Minute))
		require.NoError(t, c.Set(ctx, p+"k:2", "1", time.Minute))
		require.NoError(t, c.Set(ctx, p+"other", "1", time.Minute))

		keys, err := c.Keys(ctx, p+"k:*")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{p + "k:1", p + "k:2"}, keys)

		require.NoError(t, c.Delete(ctx, keys...))
		require.NoError(t, c.Delete(ctx))

		keys, err = c.Keys(ctx, p+"k:*")
		require.NoError(t, err)
		require.Empty(t, keys)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, c.Ping(ctx))
	})
}

func TestMemoryCacheContract(t *testing.T) {
	testCacheContract(t, revocation.NewMemoryCache())
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	c := revocation.NewMemoryCache()
	c.SetClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "short", "1", 2*time.Second))
	require.NoError(t, c.Set(ctx, "forever", "1", 0))

	now = now.Add(time.Second)
	ok, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(time.Second)
	ok, err = c.Exists(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok, "key expires exactly at its deadline")

	won, err := c.SetNX(ctx, "short", "again", time.Second)
	require.NoError(t, err)
	require.True(t, won, "an expired key can be claimed again")

	keys, err := c.Keys(ctx, "*")
	require.NoError(t, err)
	require.Equal(t, []string{"forever", "short"}, keys)

	ttl, err := c.TTL(ctx, "forever")
	require.NoError(t, err)
	require.Negative(t, ttl)
}
