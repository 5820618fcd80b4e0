package booksdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.True(t, exp.Equal(tokenExpiry(signed(t, exp))))
	require.True(t, tokenExpiry("not-a-jwt").IsZero())
}

func TestSessionRefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	fresh := signed(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			assert.Equal(t, "Bearer refresh-1", r.Header.Get("Authorization"))
			refreshes.Add(1)
			// Rotated tokens are single use; a second presentation is revoked.
			if refreshes.Load() > 1 {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{ErrorCode: CodeTokenRevoked, Message: "revoked"})
				return
			}
			writeJSON(w, http.StatusOK, TokenPair{AccessToken: fresh, RefreshToken: "refresh-2", TokenType: "bearer"})
		case "/api/v1/auth/me":
			assert.Equal(t, "Bearer "+fresh, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, Profile{User: User{ID: "u1"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL + "/")
	sess := client.NewSession(TokenPair{AccessToken: signed(t, time.Now().Add(time.Second)), RefreshToken: "refresh-1"})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := sess.Me(context.Background())
			if assert.NoError(t, err) {
				assert.Equal(t, "u1", p.ID)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, refreshes.Load())
	require.Equal(t, "refresh-2", sess.RefreshToken())
	require.Equal(t, fresh, sess.AccessToken())
}

func TestAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Message:    "Invalid email or password",
				ErrorCode:  CodeInvalidCredentials,
				Resolution: "Check your credentials and try again",
			})
		case "/api/v1/auth/signup":
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				ErrorCode: CodeValidationError,
				Fields:    map[string]string{"email": "must be a valid email address"},
			})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)
	ctx := context.Background()

	_, err := client.Login(ctx, "a@example.com", "wrong")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, CodeInvalidCredentials, apiErr.Code)
	require.NotEmpty(t, apiErr.Resolution)

	_, err = client.Signup(ctx, SignupRequest{Email: "nope"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "must be a valid email address", apiErr.Fields["email"])

	_, err = client.GetLiveness(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, CodeInternalError, apiErr.Code)
}

func TestPageQuery(t *testing.T) {
	t.Parallel()

	require.Empty(t, Page{}.query())
	require.Equal(t, "?limit=10", Page{Limit: 10}.query())
	require.Equal(t, "?limit=10&offset=20", Page{Limit: 10, Offset: 20}.query())
}
