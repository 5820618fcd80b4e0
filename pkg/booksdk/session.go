package booksdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is an authenticated connection to the service. Every Session
// method refreshes the token pair when the access token is about to expire.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// NewSession wraps an existing token pair, e.g. one restored from storage.
func (c *SDKClient) NewSession(pair TokenPair) *Session {
	s := &Session{client: c}
	s.store(pair)
	return s
}

// store must be called with mu held for writing, or before s is shared.
func (s *Session) store(pair TokenPair) {
	s.accessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		s.refreshToken = pair.RefreshToken
	}
	s.expiresAt = tokenExpiry(pair.AccessToken).Add(-s.client.RefreshLeeway)
}

// tokenExpiry reads exp from a JWT without verifying it; the server is the
// authority, the client only needs to know when to rotate. A token without a
// readable exp is treated as never expiring.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

func (s *Session) fresh() bool {
	return s.expiresAt.IsZero() || time.Now().Before(s.expiresAt)
}

// getValidToken returns a usable access token, rotating the pair if needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.fresh() {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if s.fresh() {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	return s.accessToken, nil
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return fmt.Errorf("access token expired and no refresh token available")
	}
	pair, err := s.client.RefreshTokens(ctx, s.refreshToken)
	if err != nil {
		return err
	}
	s.store(*pair)
	return nil
}

// Refresh rotates the token pair now, regardless of expiry.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// Tokens returns the current pair.
func (s *Session) Tokens() TokenPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TokenPair{AccessToken: s.accessToken, RefreshToken: s.refreshToken, TokenType: "bearer"}
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Logout revokes the access token and every refresh token of the user. The
// Session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	var msg MessageResponse
	if err := s.call(ctx, http.MethodPost, "/api/v1/auth/logout", nil, &msg, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}

// RevokeAll signs out every device. This Session keeps working until its
// access token expires.
func (s *Session) RevokeAll(ctx context.Context) error {
	var msg MessageResponse
	return s.call(ctx, http.MethodPost, "/api/v1/auth/revoke-all", nil, &msg, http.StatusOK)
}

// Me returns the signed-in user's profile.
func (s *Session) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := s.call(ctx, http.MethodGet, "/api/v1/auth/me", nil, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// ActiveSessions counts the user's live refresh tokens.
func (s *Session) ActiveSessions(ctx context.Context) (int, error) {
	var resp SessionsResponse
	if err := s.call(ctx, http.MethodGet, "/api/v1/auth/sessions", nil, &resp, http.StatusOK); err != nil {
		return 0, err
	}
	return resp.ActiveSessions, nil
}

// ListRevoked dumps the revocation store. Superadmin only.
func (s *Session) ListRevoked(ctx context.Context) ([]RevokedEntry, error) {
	var entries []RevokedEntry
	if err := s.call(ctx, http.MethodGet, "/api/v1/auth/revoked", nil, &entries, http.StatusOK); err != nil {
		return nil, err
	}
	return entries, nil
}
