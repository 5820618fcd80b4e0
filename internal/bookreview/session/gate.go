package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/metrics"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
)

// RevocationChecker is the read side of revocation.Store.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	IsRefreshRevoked(ctx context.Context, uid, jti string) (bool, error)
}

// Gate authenticates a single request from its Authorization header.
type Gate struct {
	Codec       *jwtx.Codec
	Revocations RevocationChecker
	Metrics     *metrics.Metrics
}

// Authenticate admits a bearer token of the wanted kind and returns its
// claims. Checks run in a fixed order: presence, shape, signature and
// expiry, revocation, kind.
func (g *Gate) Authenticate(ctx context.Context, header string, want jwtx.Kind) (jwtx.Claims, error) {
	claims, err := g.authenticate(ctx, header, want)
	if err != nil {
		g.Metrics.ObserveGateRejection(Reason(err))
	}
	return claims, err
}

func (g *Gate) authenticate(ctx context.Context, header string, want jwtx.Kind) (jwtx.Claims, error) {
	token, err := BearerToken(header)
	if err != nil {
		return jwtx.Claims{}, err
	}

	if err := jwtx.CheckShape(token); err != nil {
		if errors.Is(err, jwtx.ErrEmpty) {
			return jwtx.Claims{}, ErrEmptyToken
		}
		return jwtx.Claims{}, ErrMalformedToken
	}

	claims, err := g.Codec.Parse(token)
	if err != nil {
		// Tampered and expired look the same to the client.
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidOrExpiredToken, err)
	}

	var revoked bool
	if claims.Refresh {
		revoked, err = g.Revocations.IsRefreshRevoked(ctx, subject(claims), claims.ID)
	} else {
		revoked, err = g.Revocations.IsRevoked(ctx, claims.ID)
	}
	if err != nil {
		return jwtx.Claims{}, internal(err)
	}
	if revoked {
		return jwtx.Claims{}, ErrTokenRevoked
	}

	if claims.Kind() != want {
		return jwtx.Claims{}, ErrWrongTokenKind
	}
	return claims, nil
}

// BearerToken extracts the credential from an Authorization header. The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingCredentials
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingCredentials
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// RequireRole admits claims whose embedded role is one of allowed.
func RequireRole(claims jwtx.Claims, allowed ...domain.Role) error {
	if slices.Contains(allowed, domain.Role(claims.User.Role)) {
		return nil
	}
	return ErrInsufficientPermissions
}
