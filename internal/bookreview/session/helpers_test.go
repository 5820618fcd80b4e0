package session_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/revocation"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "user@example.com"
	testPassword = "correct-pw"
)

// fastParams keep argon2id cheap in tests.
var fastParams = cryptox.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// fakeDirectory is an in-memory UserDirectory.
type fakeDirectory struct {
	mu    sync.Mutex
	users map[string]domain.User
	err   error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[string]domain.User)}
}

func (d *fakeDirectory) put(u domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
}

func (d *fakeDirectory) update(id string, fn func(*domain.User)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u := d.users[id]
	fn(&u)
	d.users[id] = u
}

func (d *fakeDirectory) remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, id)
}

func (d *fakeDirectory) get(id string) domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.users[id]
}

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return domain.User{}, d.err
	}
	for _, u := range d.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return domain.User{}, session.ErrUserNotFound
}

func (d *fakeDirectory) FindByID(_ context.Context, id string) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return domain.User{}, d.err
	}
	u, ok := d.users[id]
	if !ok {
		return domain.User{}, session.ErrUserNotFound
	}
	return u, nil
}

func (d *fakeDirectory) UpdatePasswordHash(_ context.Context, id, hash string) error {
	d.update(id, func(u *domain.User) { u.PasswordHash = hash })
	return nil
}

type fixture struct {
	mu  sync.Mutex
	now time.Time

	dir         *fakeDirectory
	hasher      *cryptox.Hasher
	codec       *jwtx.Codec
	revocations *revocation.Store
	authority   *session.Authority
	gate        *session.Gate
	user        domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Now().Truncate(time.Second)}

	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret: []byte("test-secret-test-secret-test-secret"),
		Now:    f.clock,
	})
	require.NoError(t, err)

	cache := revocation.NewMemoryCache()
	cache.SetClock(f.clock)

	f.dir = newFakeDirectory()
	f.hasher = cryptox.NewHasher("pepper").WithParams(fastParams)
	f.codec = codec
	f.revocations = revocation.NewStore(cache, revocation.WithClock(f.clock))
	f.authority = &session.Authority{
		Codec:       f.codec,
		Revocations: f.revocations,
		Directory:   f.dir,
		Hasher:      f.hasher,
	}
	f.gate = &session.Gate{Codec: f.codec, Revocations: f.revocations}
	f.user = f.addUser(t, testEmail, testPassword, domain.RoleUser)
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fixture) addUser(t *testing.T, email, password string, role domain.Role) domain.User {
	t.Helper()
	digest, err := f.hasher.Hash(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.NewString(),
		Username:     email,
		Email:        email,
		PasswordHash: digest,
		Role:         role,
		IsActive:     true,
		IsVerified:   true,
	}
	f.dir.put(u)
	return u
}

func (f *fixture) login(t *testing.T) domain.TokenPair {
	t.Helper()
	pair, err := f.authority.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	return pair
}

func (f *fixture) parse(t *testing.T, token string) jwtx.Claims {
	t.Helper()
	claims, err := f.codec.Parse(token)
	require.NoError(t, err)
	return claims
}

func bearer(token string) string { return "Bearer " + token }
