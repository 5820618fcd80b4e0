package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Refresh tokens always outlive access tokens.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Kind partitions tokens into access and refresh grants.
type Kind uint8

const (
	KindAccess Kind = iota
	KindRefresh
)

func (k Kind) String() string {
	if k == KindRefresh {
		return "refresh"
	}
	return "access"
}

// UserSummary is the projection of a user embedded in every token so
// handlers can authorise without a directory lookup. It can be stale for at
// most one access token lifetime.
type UserSummary struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Claims carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims

	// Refresh is true for refresh tokens and false for access tokens.
	Refresh bool `json:"refresh"`

	User UserSummary `json:"user"`
}

// NewClaims builds the claim set for a token issued at now. Timestamps are
// truncated to whole seconds and nbf always equals iat.
func NewClaims(user UserSummary, kind Kind, ttl time.Duration, issuer, audience string, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)

	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Refresh: kind == KindRefresh,
		User:    user,
	}
	if audience != "" {
		c.Audience = jwt.ClaimStrings{audience}
	}
	return c
}

// NewJTI returns a random UUIDv4 for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// Kind reports which kind of token the claims belong to.
func (c *Claims) Kind() Kind {
	if c.Refresh {
		return KindRefresh
	}
	return KindAccess
}

// Expiry returns exp as a time, or the zero time if it is missing.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ExpiredAt reports whether the token is no longer valid at now.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Time)
}

// ValidateIssuer checks iss against expected. An empty expectation passes.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" || c.Issuer == expected {
		return nil
	}
	return ErrIssuer
}

// ValidateAudience checks that expected appears in aud. An empty expectation
// passes.
func (c *Claims) ValidateAudience(expected string) error {
	if expected == "" || slices.Contains(c.Audience, expected) {
		return nil
	}
	return ErrAudience
}
