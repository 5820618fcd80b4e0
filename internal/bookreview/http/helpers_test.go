package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/mail"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/metrics"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/revocation"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/sqlite"
	"github.com/aussiebroadwan/bookreview/pkg/booksdk"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testBootstrapToken = "boot-token"
	testPassword       = "s3cret-pw"
	adminEmail         = "root@example.com"
)

var linkToken = regexp.MustCompile(`/api/v1/auth/(?:verify|password-reset)/([A-Za-z0-9_-]+)`)

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

// lastToken returns the token from the newest email sent to addr.
func (o *outbox) lastToken(t *testing.T, addr string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.msgs) - 1; i >= 0; i-- {
		if o.msgs[i].To != addr {
			continue
		}
		m := linkToken.FindStringSubmatch(o.msgs[i].HTML)
		require.Len(t, m, 2, "no link in email to %s", addr)
		return m[1]
	}
	t.Fatalf("no email sent to %s", addr)
	return ""
}

type testEnv struct {
	router  *Router
	store   store.Store
	revs    *revocation.Store
	outbox  *outbox
	metrics *metrics.Metrics
}

// newTestEnv wires the router to an in-memory database and revocation cache
// with rate limiting disabled.
func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithLimits(t, RateLimits{})
}

func newTestEnvWithLimits(t *testing.T, limits RateLimits) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	revs := revocation.NewStore(revocation.NewMemoryCache())
	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret: []byte("http-test-secret"),
		Issuer: "bookreview-test",
	})
	require.NoError(t, err)

	hasher := cryptox.NewHasher("pepper").WithParams(cryptox.Argon2Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		KeyLength:   32,
		SaltLength:  16,
	})
	m := metrics.New()
	box := &outbox{}

	gate := &session.Gate{Codec: codec, Revocations: revs, Metrics: m}
	authority := &session.Authority{
		Codec:           codec,
		Revocations:     revs,
		Directory:       session.StoreDirectory{Store: st},
		Hasher:          hasher,
		RequireVerified: true,
		Metrics:         m,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(gate, "test", st, revs, m, limits, logger)
	r.Accounts = &service.AccountService{
		Store:    st,
		Hasher:   hasher,
		Sessions: authority,
		Outbox:   box,
		BaseURL:  "http://books.test",
	}
	r.Sessions = authority
	r.Revocations = revs
	r.UserService = &service.UserService{Store: st, Sessions: authority}
	r.BookService = &service.BookService{Store: st}
	r.ReviewService = &service.ReviewService{Store: st}
	r.TagService = &service.TagService{Store: st}
	r.BootstrapService = &service.BootstrapService{Store: st, Hasher: hasher, Token: testBootstrapToken}
	r.HomeURL = "http://books.test"
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, revs: revs, outbox: box, metrics: m}
}

// do sends a request through the full middleware chain. A string body is
// sent verbatim, anything else as JSON.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// requireError asserts the status and error_code of a failed request.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) booksdk.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	body := decodeBody[booksdk.ErrorResponse](t, rec)
	require.False(t, body.Success)
	require.Equal(t, code, body.ErrorCode)
	require.NotEmpty(t, body.Message)
	return body
}

// signup registers and verifies an account, returning its email.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	email := username + "@example.com"
	rec := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", booksdk.SignupRequest{
		Username:  username,
		Email:     email,
		FirstName: "Test",
		LastName:  "Reader",
		Password:  testPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	token := e.outbox.lastToken(t, email)
	rec = e.do(t, http.MethodGet, "/api/v1/auth/verify/"+token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	return email
}

func (e *testEnv) login(t *testing.T, email string) booksdk.TokenPair {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", booksdk.LoginRequest{
		Email:    email,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	pair := decodeBody[booksdk.TokenPair](t, rec)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

// reader signs up a regular user and returns their id and access token.
func (e *testEnv) reader(t *testing.T, username string) (string, string) {
	t.Helper()
	pair := e.login(t, e.signup(t, username))
	me := decodeBody[booksdk.Profile](t, e.do(t, http.MethodGet, "/api/v1/auth/me", pair.AccessToken, nil))
	return me.ID, pair.AccessToken
}

// superadmin bootstraps the deployment and returns the superadmin's id and
// access token.
func (e *testEnv) superadmin(t *testing.T) (string, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bootstrap", bytes.NewBufferString(
		`{"username":"root","email":"`+adminEmail+`","first_name":"Root","last_name":"Admin","password":"`+testPassword+`"}`))
	req.Header.Set("X-Bootstrap-Token", testBootstrapToken)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	user := decodeBody[booksdk.User](t, rec)
	return user.ID, e.login(t, adminEmail).AccessToken
}

// admin creates a user and promotes them to admin, returning a fresh token
// that carries the new role.
func (e *testEnv) admin(t *testing.T, superToken, username string) (string, string) {
	t.Helper()
	id, _ := e.reader(t, username)
	role := "admin"
	rec := e.do(t, http.MethodPatch, "/api/v1/users/"+id, superToken, booksdk.UpdateUserRequest{Role: &role})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	return id, e.login(t, username+"@example.com").AccessToken
}
