// Package revocation records which token ids are no longer honoured. It sits
// on a TTL-keyed cache: Redis in production, an in-process map for tests and
// single-node development.
package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Cache.Get when the key does not exist.
var ErrMiss = errors.New("revocation: cache miss")

// Cache is the key/value contract the revocation store is built on. A ttl of
// zero means the key does not expire. Implementations must be safe for
// concurrent use.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetNX sets key only if it does not exist and reports whether it did.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)

	// TTL returns the remaining lifetime of key, or a negative duration when
	// the key has no expiry or does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)

	Delete(ctx context.Context, keys ...string) error

	// Keys lists keys matching a glob pattern (`*`, `?`, `[...]`).
	Keys(ctx context.Context, pattern string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
