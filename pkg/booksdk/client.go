package booksdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the book review service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// RefreshLeeway is how long before expiry a Session rotates its tokens.
	RefreshLeeway time.Duration
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		RefreshLeeway: 30 * time.Second,
	}
}

// Login exchanges credentials for a token pair and wraps it in a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	pair, err := c.LoginTokens(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(*pair), nil
}

// LoginTokens is Login without the Session wrapper.
func (c *SDKClient) LoginTokens(ctx context.Context, email, password string) (*TokenPair, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login",
		LoginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshTokens rotates a refresh token. The presented token is spent
// whether or not the caller keeps the result.
func (c *SDKClient) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + refreshToken,
	})
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Signup registers a new account. The service emails a verification link.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/signup", req, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyEmail follows an emailed verification link.
func (c *SDKClient) VerifyEmail(ctx context.Context, token string) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/verify/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// ResendVerification asks for a new verification link. The service answers
// the same way whether or not the address is registered.
func (c *SDKClient) ResendVerification(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/verify/resend", EmailRequest{Email: email}, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// RequestPasswordReset asks for a reset link.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/password-reset", EmailRequest{Email: email}, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// ConfirmPasswordReset sets a new password using a reset token. Every
// session of the account is signed out.
func (c *SDKClient) ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirmRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/password-reset/confirm", req, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// Bootstrap creates the first superadmin of an empty deployment.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/bootstrap", req, map[string]string{
		"X-Bootstrap-Token": token,
	})
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
