package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CodecOptions configure a Codec.
type CodecOptions struct {
	// Secret is the shared HMAC key.
	Secret []byte

	// Algorithm is one of HS256, HS384 or HS512. Empty means HS256.
	Algorithm string

	// Issuer and Audience are stamped on issued tokens and enforced on parse
	// when non-empty.
	Issuer   string
	Audience string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock, used by tests.
	Now func() time.Time
}

// Codec issues and parses HMAC-signed access and refresh tokens.
type Codec struct {
	method     *jwt.SigningMethodHMAC
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec validates opts and returns a ready Codec.
func NewCodec(opts CodecOptions) (*Codec, error) {
	if len(opts.Secret) == 0 {
		return nil, ErrWeakSecret
	}

	alg := strings.ToUpper(strings.TrimSpace(opts.Algorithm))
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, opts.Algorithm)
	}

	c := &Codec{
		method:     method,
		secret:     opts.Secret,
		issuer:     opts.Issuer,
		audience:   opts.Audience,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		now:        opts.Now,
	}
	if c.accessTTL == 0 {
		c.accessTTL = DefaultAccessTokenTTL
	}
	if c.refreshTTL == 0 {
		c.refreshTTL = DefaultRefreshTokenTTL
	}
	if c.now == nil {
		c.now = time.Now
	}

	if c.accessTTL < time.Second || c.refreshTTL <= c.accessTTL {
		return nil, fmt.Errorf("%w: access %s, refresh %s", ErrInvalidTTL, c.accessTTL, c.refreshTTL)
	}
	return c, nil
}

// Now returns the codec's clock reading.
func (c *Codec) Now() time.Time { return c.now() }

// TTL returns the default lifetime for kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a new token for user. A ttl of zero or less selects the
// default lifetime for kind. The returned claims are exactly what was signed.
func (c *Codec) Issue(user UserSummary, kind Kind, ttl time.Duration) (string, Claims, error) {
	if ttl <= 0 {
		ttl = c.TTL(kind)
	}
	if ttl < time.Second {
		return "", Claims{}, fmt.Errorf("%w: %s", ErrInvalidTTL, ttl)
	}

	claims := NewClaims(user, kind, ttl, c.issuer, c.audience, c.now())

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, claims, nil
}

// Parse checks the token's shape and signature, then its claims. Expiry is
// reported as ErrExpired so callers can tell it apart from tampering.
func (c *Codec) Parse(token string) (Claims, error) {
	if err := CheckShape(token); err != nil {
		return Claims{}, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(c.audience); err != nil {
		return Claims{}, err
	}
	if claims.ID == "" || claims.Subject == "" || claims.IssuedAt == nil {
		return Claims{}, ErrInvalidClaim
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return Claims{}, ErrInvalidClaim
	}
	return claims, nil
}

// CheckShape rejects tokens that are not three non-empty dot-separated
// segments, without touching any cryptography.
func CheckShape(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmpty
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrMalformed
	}
	for _, p := range parts {
		if p == "" {
			return ErrMalformed
		}
	}
	return nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrNotYetValid
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}
