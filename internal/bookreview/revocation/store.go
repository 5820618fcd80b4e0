package revocation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultJTIExpiry is the marker lifetime used when a token's expiry is
// unknown.
const DefaultJTIExpiry = time.Hour

// Key namespaces. A per-user revoked marker is the active key under the
// revoked prefix.
const (
	revokedPrefix       = "revoked:"
	activeRefreshPrefix = "user_refresh_tokens:"
)

var ErrEmptyID = errors.New("revocation: empty token or user id")

// Store tracks revoked token ids and the active refresh tokens of each user.
// Every marker expires with the token it describes.
type Store struct {
	cache     Cache
	jtiExpiry time.Duration
	now       func() time.Time
}

type Option func(*Store)

// WithJTIExpiry sets the marker lifetime for tokens without a known expiry.
func WithJTIExpiry(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.jtiExpiry = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(cache Cache, opts ...Option) *Store {
	s := &Store{
		cache:     cache,
		jtiExpiry: DefaultJTIExpiry,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RevokedEntry describes one revoked marker.
type RevokedEntry struct {
	Key   string        `json:"key"`
	Value string        `json:"value"`
	TTL   time.Duration `json:"ttl"`
}

func revokedKey(jti string) string { return revokedPrefix + jti }

func activeRefreshKey(uid, jti string) string { return activeRefreshPrefix + uid + ":" + jti }

func userRefreshRevokedKey(uid, jti string) string { return revokedPrefix + activeRefreshKey(uid, jti) }

// ttl is the remaining lifetime of a token expiring at expiresAt, in whole
// seconds and never below one.
func (s *Store) ttl(expiresAt time.Time) time.Duration {
	if expiresAt.IsZero() {
		return s.jtiExpiry
	}
	return max(time.Second, expiresAt.Sub(s.now()).Truncate(time.Second))
}

// MarkRevoked writes revoked:<jti>. Marking twice is harmless.
func (s *Store) MarkRevoked(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrEmptyID
	}
	if err := s.cache.Set(ctx, revokedKey(jti), "1", s.ttl(expiresAt)); err != nil {
		return fmt.Errorf("revocation: mark %s: %w", jti, err)
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, ErrEmptyID
	}
	ok, err := s.cache.Exists(ctx, revokedKey(jti))
	if err != nil {
		return false, fmt.Errorf("revocation: check %s: %w", jti, err)
	}
	return ok, nil
}

// RegisterActiveRefresh records an issued refresh token. The stored value is
// its expiry so RevokeAllUserRefresh can size the revoked markers.
func (s *Store) RegisterActiveRefresh(ctx context.Context, uid, jti string, expiresAt time.Time) error {
	if uid == "" || jti == "" {
		return ErrEmptyID
	}
	value := strconv.FormatInt(expiresAt.Unix(), 10)
	if expiresAt.IsZero() {
		value = "0"
	}
	if err := s.cache.Set(ctx, activeRefreshKey(uid, jti), value, s.ttl(expiresAt)); err != nil {
		return fmt.Errorf("revocation: register refresh %s: %w", jti, err)
	}
	return nil
}

// ForgetActiveRefresh drops the active marker of a refresh token that has
// been rotated out.
func (s *Store) ForgetActiveRefresh(ctx context.Context, uid, jti string) error {
	if err := s.cache.Delete(ctx, activeRefreshKey(uid, jti)); err != nil {
		return fmt.Errorf("revocation: forget refresh %s: %w", jti, err)
	}
	return nil
}

// MarkUserRefreshRevoked rejects one refresh token of one user.
func (s *Store) MarkUserRefreshRevoked(ctx context.Context, uid, jti string, expiresAt time.Time) error {
	if uid == "" || jti == "" {
		return ErrEmptyID
	}
	if err := s.cache.Set(ctx, userRefreshRevokedKey(uid, jti), "1", s.ttl(expiresAt)); err != nil {
		return fmt.Errorf("revocation: revoke refresh %s: %w", jti, err)
	}
	return nil
}

// ClaimRefreshRotation atomically revokes a refresh token for rotation. Only
// one caller per token gets true; everyone else lost the race or presented a
// token that was already revoked.
func (s *Store) ClaimRefreshRotation(ctx context.Context, uid, jti string, expiresAt time.Time) (bool, error) {
	if uid == "" || jti == "" {
		return false, ErrEmptyID
	}
	won, err := s.cache.SetNX(ctx, userRefreshRevokedKey(uid, jti), "1", s.ttl(expiresAt))
	if err != nil {
		return false, fmt.Errorf("revocation: claim refresh %s: %w", jti, err)
	}
	return won, nil
}

func (s *Store) IsUserRefreshRevoked(ctx context.Context, uid, jti string) (bool, error) {
	if uid == "" || jti == "" {
		return false, ErrEmptyID
	}
	ok, err := s.cache.Exists(ctx, userRefreshRevokedKey(uid, jti))
	if err != nil {
		return false, fmt.Errorf("revocation: check refresh %s: %w", jti, err)
	}
	return ok, nil
}

// IsRefreshRevoked reports whether a refresh token is revoked under either
// namespace.
func (s *Store) IsRefreshRevoked(ctx context.Context, uid, jti string) (bool, error) {
	revoked, err := s.IsUserRefreshRevoked(ctx, uid, jti)
	if err != nil || revoked {
		return revoked, err
	}
	return s.IsRevoked(ctx, jti)
}

// ActiveRefresh lists the jtis of the user's live refresh tokens.
func (s *Store) ActiveRefresh(ctx context.Context, uid string) ([]string, error) {
	if uid == "" {
		return nil, ErrEmptyID
	}
	prefix := activeRefreshPrefix + uid + ":"
	keys, err := s.cache.Keys(ctx, escapeGlob(prefix)+"*")
	if err != nil {
		return nil, fmt.Errorf("revocation: list refresh for %s: %w", uid, err)
	}

	jtis := make([]string, 0, len(keys))
	for _, k := range keys {
		jtis = append(jtis, strings.TrimPrefix(k, prefix))
	}
	return jtis, nil
}

// RevokeAllUserRefresh revokes every live refresh token of the user and
// returns how many markers it wrote. A revoked marker is written for each token
// before its active marker is removed, so a token cannot slip through
// between the two steps.
func (s *Store) RevokeAllUserRefresh(ctx context.Context, uid string) (int, error) {
	if uid == "" {
		return 0, ErrEmptyID
	}
	keys, err := s.cache.Keys(ctx, escapeGlob(activeRefreshPrefix+uid+":")+"*")
	if err != nil {
		return 0, fmt.Errorf("revocation: list refresh for %s: %w", uid, err)
	}

	// SCAN may return a key more than once
	slices.Sort(keys)
	keys = slices.Compact(keys)

	revoked := 0
	for _, key := range keys {
		exp, err := s.activeExpiry(ctx, key)
		if errors.Is(err, ErrMiss) {
			continue // expired meanwhile
		}
		if err != nil {
			return 0, err
		}
		if err := s.cache.Set(ctx, revokedPrefix+key, "1", s.ttl(exp)); err != nil {
			return 0, fmt.Errorf("revocation: revoke %s: %w", key, err)
		}
		revoked++
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		return 0, fmt.Errorf("revocation: delete refresh for %s: %w", uid, err)
	}
	return revoked, nil
}

func (s *Store) activeExpiry(ctx context.Context, key string) (time.Time, error) {
	v, err := s.cache.Get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}, nil
	}
	return time.Unix(n, 0), nil
}

// ListRevoked returns every revoked marker with its remaining lifetime.
func (s *Store) ListRevoked(ctx context.Context) ([]RevokedEntry, error) {
	keys, err := s.cache.Keys(ctx, revokedPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("revocation: list revoked: %w", err)
	}

	entries := make([]RevokedEntry, 0, len(keys))
	for _, k := range keys {
		v, err := s.cache.Get(ctx, k)
		if errors.Is(err, ErrMiss) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ttl, err := s.cache.TTL(ctx, k)
		if err != nil {
			return nil, err
		}
		entries = append(entries, RevokedEntry{Key: k, Value: v, TTL: ttl})
	}
	return entries, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.cache.Ping(ctx) }

func (s *Store) Close() error { return s.cache.Close() }

// escapeGlob quotes glob metacharacters in a literal key prefix.
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
