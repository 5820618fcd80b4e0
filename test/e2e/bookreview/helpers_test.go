package bookreview_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/app"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/mail"
	"github.com/aussiebroadwan/bookreview/pkg/booksdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end tests run the fully wired application in-process against a
 * real Redis revocation store and drive it through the public SDK.
 */

const (
	jwtSecret      = "e2e-secret-key"
	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@example.com"
	adminPassword  = "Admin123!"
	userPassword   = "Reader123!"
)

var linkToken = regexp.MustCompile(`/api/v1/auth/(?:verify|password-reset)/([A-Za-z0-9_-]+)`)

// mailbox captures delivered emails in place of SMTP.
type mailbox struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *mailbox) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mailbox) count(to string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.sent {
		if msg.To == to {
			n++
		}
	}
	return n
}

// waitForToken blocks until the n-th email to addr has been delivered and
// returns the token from its link.
func (m *mailbox) waitForToken(t *testing.T, addr string, n int) string {
	t.Helper()
	require.Eventually(t, func() bool { return m.count(addr) >= n }, 5*time.Second, 10*time.Millisecond,
		"expected %d emails to %s", n, addr)

	m.mu.Lock()
	defer m.mu.Unlock()
	seen := 0
	for _, msg := range m.sent {
		if msg.To != addr {
			continue
		}
		if seen++; seen == n {
			match := linkToken.FindStringSubmatch(msg.HTML)
			require.Len(t, match, 2, "no link in email %q", msg.Subject)
			return match[1]
		}
	}
	t.Fatalf("email %d to %s not found", n, addr)
	return ""
}

// setupRedis starts a throwaway Redis and returns its URL.
func setupRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e tests in -short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return "redis://" + endpoint + "/0"
}

func testConfig(redisURL string) app.Config {
	return app.Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "json",
		DatabaseURL:          ":memory:",
		RevocationBackend:    "redis",
		RedisURL:             redisURL,
		JWTSecret:            jwtSecret,
		JWTAlgorithm:         "HS256",
		JWTIssuer:            "bookreview-e2e",
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      24 * time.Hour,
		JTIExpiry:            time.Hour,
		RequireVerifiedEmail: true,
		BootstrapToken:       bootstrapToken,
		Domain:               "http://books.test",
		MailQueueSize:        10,
		VerificationTokenTTL: time.Hour,
		ResetTokenTTL:        30 * time.Minute,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		// Zero rate limits disable throttling.
	}
}

// instance is one running copy of the service.
type instance struct {
	client *booksdk.SDKClient
	mail   *mailbox
}

// startService boots an application against redisURL and serves it over a
// loopback listener.
func startService(t *testing.T, redisURL string) *instance {
	t.Helper()

	box := &mailbox{}
	application, err := app.New(testConfig(redisURL),
		app.WithMailer(box),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	application.Start()

	server := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		server.Close()
		if err := application.Close(); err != nil {
			t.Logf("failed to close application: %v", err)
		}
	})

	return &instance{client: booksdk.NewSDKClient(server.URL), mail: box}
}

// bootstrapAdmin creates the superadmin and signs in.
func (in *instance) bootstrapAdmin(t *testing.T) *booksdk.Session {
	t.Helper()
	user, err := in.client.Bootstrap(t.Context(), bootstrapToken, booksdk.BootstrapRequest{
		Username:  "admin",
		Email:     adminEmail,
		FirstName: "Ada",
		LastName:  "Admin",
		Password:  adminPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "superadmin", user.Role)

	session, err := in.client.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	return session
}

// registerReader signs up and verifies a regular account, then signs in.
func (in *instance) registerReader(t *testing.T, username string) (*booksdk.Session, string) {
	t.Helper()
	email := username + "@example.com"
	_, err := in.client.Signup(t.Context(), booksdk.SignupRequest{
		Username:  username,
		Email:     email,
		FirstName: "Rea",
		LastName:  "Der",
		Password:  userPassword,
	})
	require.NoError(t, err)

	require.NoError(t, in.client.VerifyEmail(t.Context(), in.mail.waitForToken(t, email, 1)))

	session, err := in.client.Login(t.Context(), email, userPassword)
	require.NoError(t, err)
	return session, email
}

// requireAPIError asserts err is an *booksdk.APIError with the given code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var apiErr *booksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
	require.Equal(t, code, apiErr.Code)
}
