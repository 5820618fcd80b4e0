package revocation_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/revocation"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cache *revocation.MemoryCache
	store *revocation.Store
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Unix(1_700_000_000, 0)}
	clock := func() time.Time { return f.now }

	f.cache = revocation.NewMemoryCache()
	f.cache.SetClock(clock)
	f.store = revocation.NewStore(f.cache,
		revocation.WithClock(clock),
		revocation.WithJTIExpiry(30*time.Minute),
	)
	return f
}

func (f *fixture) ttl(t *testing.T, key string) time.Duration {
	t.Helper()
	ttl, err := f.cache.TTL(context.Background(), key)
	require.NoError(t, err)
	return ttl
}

func TestMarkRevokedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	exp := f.now.Add(10 * time.Minute)

	require.NoError(t, f.store.MarkRevoked(ctx, "jti-1", exp))
	require.NoError(t, f.store.MarkRevoked(ctx, "jti-1", exp))

	revoked, err := f.store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = f.store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, revoked)

	require.ErrorIs(t, f.store.MarkRevoked(ctx, "", exp), revocation.ErrEmptyID)
}

func TestMarkerLifetime(t *testing.T) {
	ctx := context.Background()

	t.Run("remaining token lifetime", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.MarkRevoked(ctx, "a", f.now.Add(10*time.Minute+500*time.Millisecond)))
		require.Equal(t, 10*time.Minute, f.ttl(t, "revoked:a"))
	})

	t.Run("never below one second", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.MarkRevoked(ctx, "b", f.now.Add(-time.Hour)))
		require.Equal(t, time.Second, f.ttl(t, "revoked:b"))
	})

	t.Run("default when expiry unknown", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.MarkRevoked(ctx, "c", time.Time{}))
		require.Equal(t, 30*time.Minute, f.ttl(t, "revoked:c"))
	})

	t.Run("marker disappears with the token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.MarkRevoked(ctx, "d", f.now.Add(5*time.Second)))
		f.now = f.now.Add(5 * time.Second)
		revoked, err := f.store.IsRevoked(ctx, "d")
		require.NoError(t, err)
		require.False(t, revoked)
	})
}

func TestActiveRefreshBookkeeping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	exp := f.now.Add(24 * time.Hour)

	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u1", "r1", exp))
	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u1", "r2", exp))
	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u2", "r3", exp))

	v, err := f.cache.Get(ctx, "user_refresh_tokens:u1:r1")
	require.NoError(t, err)
	require.Equal(t, "1700086400", v)

	active, err := f.store.ActiveRefresh(ctx, "u1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"r1", "r2"}, active)

	require.NoError(t, f.store.ForgetActiveRefresh(ctx, "u1", "r1"))
	active, err = f.store.ActiveRefresh(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"r2"}, active)
}

func TestRevokeAllUserRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u1", "r1", f.now.Add(time.Hour)))
	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u1", "r2", f.now.Add(2*time.Hour)))
	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u2", "r3", f.now.Add(time.Hour)))

	n, err := f.store.RevokeAllUserRefresh(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	for _, jti := range []string{"r1", "r2"} {
		revoked, err := f.store.IsRefreshRevoked(ctx, "u1", jti)
		require.NoError(t, err)
		require.True(t, revoked, jti)
	}
	require.Equal(t, 2*time.Hour, f.ttl(t, "revoked:user_refresh_tokens:u1:r2"))

	active, err := f.store.ActiveRefresh(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, active)

	revoked, err := f.store.IsRefreshRevoked(ctx, "u2", "r3")
	require.NoError(t, err)
	require.False(t, revoked, "other users are untouched")

	n, err = f.store.RevokeAllUserRefresh(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, n)
}

// scanningCache reports stale and repeated keys the way a Redis SCAN can.
type scanningCache struct {
	*revocation.MemoryCache
	extra []string
}

func (c *scanningCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.MemoryCache.Keys(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return append(keys, c.extra...), nil
}

func TestRevokeAllUserRefreshCountsWrittenMarkers(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		want  int
	}{
		{name: "no extra keys", want: 2},
		{name: "duplicate keys", extra: []string{"user_refresh_tokens:u1:r1", "user_refresh_tokens:u1:r2"}, want: 2},
		{name: "key expired between scan and read", extra: []string{"user_refresh_tokens:u1:gone"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			cache := &scanningCache{MemoryCache: f.cache, extra: tt.extra}
			store := revocation.NewStore(cache,
				revocation.WithClock(func() time.Time { return f.now }),
			)

			require.NoError(t, store.RegisterActiveRefresh(ctx, "u1", "r1", f.now.Add(time.Hour)))
			require.NoError(t, store.RegisterActiveRefresh(ctx, "u1", "r2", f.now.Add(time.Hour)))

			n, err := store.RevokeAllUserRefresh(ctx, "u1")
			require.NoError(t, err)
			require.Equal(t, tt.want, n)

			revoked, err := store.IsRefreshRevoked(ctx, "u1", "gone")
			require.NoError(t, err)
			require.False(t, revoked, "no marker for a key that had already expired")
		})
	}
}

func TestIsRefreshRevokedChecksBothNamespaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	exp := f.now.Add(time.Hour)

	require.NoError(t, f.store.MarkRevoked(ctx, "flat", exp))
	require.NoError(t, f.store.MarkUserRefreshRevoked(ctx, "u1", "scoped", exp))

	for _, jti := range []string{"flat", "scoped"} {
		revoked, err := f.store.IsRefreshRevoked(ctx, "u1", jti)
		require.NoError(t, err)
		require.True(t, revoked, jti)
	}

	scoped, err := f.store.IsUserRefreshRevoked(ctx, "u2", "scoped")
	require.NoError(t, err)
	require.False(t, scoped)
}

func TestClaimRefreshRotationHasOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	exp := f.now.Add(time.Hour)

	var (
		wins atomic.Int32
		wg   sync.WaitGroup
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := f.store.ClaimRefreshRotation(ctx, "u1", "r1", exp)
			if err == nil && won {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, wins.Load())

	revoked, err := f.store.IsUserRefreshRevoked(ctx, "u1", "r1")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestListRevoked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.MarkRevoked(ctx, "a", f.now.Add(time.Minute)))
	require.NoError(t, f.store.MarkUserRefreshRevoked(ctx, "u1", "r1", f.now.Add(time.Hour)))
	require.NoError(t, f.store.RegisterActiveRefresh(ctx, "u1", "r2", f.now.Add(time.Hour)))

	entries, err := f.store.ListRevoked(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "revoked:a", entries[0].Key)
	require.Equal(t, time.Minute, entries[0].TTL)
	require.Equal(t, "revoked:user_refresh_tokens:u1:r1", entries[1].Key)
}
