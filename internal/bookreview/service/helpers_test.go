package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/mail"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/sqlite"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
	"github.com/stretchr/testify/require"
)

var testHasher = cryptox.NewHasher("pepper").WithParams(cryptox.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
})

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, username string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hash",
		Role:         role,
		IsVerified:   true,
		IsActive:     true,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func actorOf(u domain.User) Actor { return Actor{ID: u.ID, Role: u.Role} }

// outbox records queued emails.
type outbox struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (o *outbox) Enqueue(msg mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
	return nil
}

func (o *outbox) last(t *testing.T) mail.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.msgs, "no email queued")
	return o.msgs[len(o.msgs)-1]
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.msgs)
}

// revoker records users whose sessions were revoked.
type revoker struct {
	mu   sync.Mutex
	uids []string
}

func (r *revoker) RevokeUser(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uids = append(r.uids, uid)
	return nil
}

func (r *revoker) revoked() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uids...)
}

var linkToken = regexp.MustCompile(`/api/v1/auth/(?:verify|password-reset)/([A-Za-z0-9_-]+)`)

// tokenFrom extracts the one-time token from an emailed link.
func tokenFrom(t *testing.T, msg mail.Message) string {
	t.Helper()
	m := linkToken.FindStringSubmatch(msg.HTML)
	require.Len(t, m, 2, "no link in %q", msg.Subject)
	return m[1]
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Now().Truncate(time.Second)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
