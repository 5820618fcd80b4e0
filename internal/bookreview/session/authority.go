// Package session owns the token lifecycle: login, refresh rotation, logout
// and per-request authentication.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/metrics"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

// Revocation scopes reported to metrics.
const (
	scopeAccess  = "access"
	scopeRefresh = "refresh"
)

// Revocations is the part of revocation.Store the Authority drives.
type Revocations interface {
	MarkRevoked(ctx context.Context, jti string, expiresAt time.Time) error
	RegisterActiveRefresh(ctx context.Context, uid, jti string, expiresAt time.Time) error
	ForgetActiveRefresh(ctx context.Context, uid, jti string) error
	ClaimRefreshRotation(ctx context.Context, uid, jti string, expiresAt time.Time) (bool, error)
	IsRefreshRevoked(ctx context.Context, uid, jti string) (bool, error)
	RevokeAllUserRefresh(ctx context.Context, uid string) (int, error)
}

// Authority mints, rotates and revokes token pairs.
//
// Tokens embed a summary of the user (id, email, role). Handlers trust that
// summary, so a role or email change is visible to them only once the user's
// access token is reissued, at most one access TTL later. Refresh always
// mints from the directory's current record.
type Authority struct {
	Codec       *jwtx.Codec
	Revocations Revocations
	Directory   UserDirectory
	Hasher      *cryptox.Hasher

	// RequireVerified rejects logins from accounts that have not confirmed
	// their email address.
	RequireVerified bool

	Metrics *metrics.Metrics
}

// Summary projects u into the claims embedded in its tokens.
func Summary(u domain.User) jwtx.UserSummary {
	return jwtx.UserSummary{UID: u.ID, Email: u.Email, Role: string(u.Role)}
}

// Login checks the password and mints a fresh pair. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials and take about the same time.
func (a *Authority) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	pair, err := a.login(ctx, email, password)
	a.Metrics.ObserveLogin(result(err))
	return pair, err
}

func (a *Authority) login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.Directory.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		a.Hasher.VerifyDummy(password)
		return domain.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.TokenPair{}, internal(err)
	}

	if err := a.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrInvalidHash) {
			l.Warn("stored password hash is unreadable", slog.String("user_id", user.ID))
		}
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return domain.TokenPair{}, ErrAccountInactive
	}
	if a.RequireVerified && !user.IsVerified {
		return domain.TokenPair{}, ErrAccountNotVerified
	}

	if a.Hasher.NeedsRehash(user.PasswordHash) {
		a.rehash(ctx, user.ID, password)
	}

	pair, err := a.issuePair(ctx, user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	l.Info("user logged in", slog.String("user_id", user.ID))
	return pair, nil
}

// rehash upgrades a legacy digest. Failure only costs another attempt on the
// next login.
func (a *Authority) rehash(ctx context.Context, uid, password string) {
	l := slogx.FromContext(ctx)

	digest, err := a.Hasher.Hash(password)
	if err == nil {
		err = a.Directory.UpdatePasswordHash(ctx, uid, digest)
	}
	if err != nil {
		l.Warn("password rehash failed", slog.String("user_id", uid), slog.Any("error", err))
		return
	}
	l.Info("password hash upgraded", slog.String("user_id", uid))
}

// Refresh consumes a refresh token and returns its replacement pair. Each
// refresh token works once: of two concurrent calls with the same token,
// exactly one succeeds and the other gets ErrTokenRevoked.
func (a *Authority) Refresh(ctx context.Context, claims jwtx.Claims) (domain.TokenPair, error) {
	pair, err := a.refresh(ctx, claims)
	a.Metrics.ObserveRefresh(result(err))
	return pair, err
}

func (a *Authority) refresh(ctx context.Context, claims jwtx.Claims) (domain.TokenPair, error) {
	if !claims.Refresh {
		return domain.TokenPair{}, ErrWrongTokenKind
	}
	if claims.ExpiredAt(a.Codec.Now()) {
		return domain.TokenPair{}, ErrInvalidOrExpiredToken
	}

	uid := subject(claims)
	if uid == "" || claims.ID == "" {
		return domain.TokenPair{}, ErrInvalidOrExpiredToken
	}

	revoked, err := a.Revocations.IsRefreshRevoked(ctx, uid, claims.ID)
	if err != nil {
		return domain.TokenPair{}, internal(err)
	}
	if revoked {
		return domain.TokenPair{}, ErrTokenRevoked
	}

	user, err := a.Directory.FindByID(ctx, uid)
	if errors.Is(err, ErrUserNotFound) {
		return domain.TokenPair{}, ErrUserNotActive
	}
	if err != nil {
		return domain.TokenPair{}, internal(err)
	}
	if !user.IsActive {
		return domain.TokenPair{}, ErrUserNotActive
	}

	// The old token is revoked before the new one exists.
	won, err := a.Revocations.ClaimRefreshRotation(ctx, uid, claims.ID, claims.Expiry())
	if err != nil {
		return domain.TokenPair{}, internal(err)
	}
	if !won {
		return domain.TokenPair{}, ErrTokenRevoked
	}
	a.Metrics.ObserveRevocations(scopeRefresh, 1)

	if err := a.Revocations.ForgetActiveRefresh(ctx, uid, claims.ID); err != nil {
		slogx.FromContext(ctx).Warn("failed to drop rotated refresh marker",
			slog.String("user_id", uid), slog.Any("error", err))
	}

	return a.issuePair(ctx, user)
}

// Logout revokes the presented access token and every refresh token of its
// user. Calling it again is harmless.
func (a *Authority) Logout(ctx context.Context, claims jwtx.Claims) (domain.Message, error) {
	if err := a.Revocations.MarkRevoked(ctx, claims.ID, claims.Expiry()); err != nil {
		return domain.Message{}, internal(err)
	}
	a.Metrics.ObserveRevocations(scopeAccess, 1)

	if _, err := a.revokeRefresh(ctx, claims); err != nil {
		return domain.Message{}, err
	}
	slogx.FromContext(ctx).Info("user logged out", slog.String("user_id", subject(claims)))
	return domain.Message{Message: "Successfully logged out"}, nil
}

// RevokeAll signs out every other device: all refresh tokens go, the
// presented access token stays valid until it expires.
func (a *Authority) RevokeAll(ctx context.Context, claims jwtx.Claims) (domain.Message, error) {
	n, err := a.revokeRefresh(ctx, claims)
	if err != nil {
		return domain.Message{}, err
	}
	slogx.FromContext(ctx).Info("refresh tokens revoked",
		slog.String("user_id", subject(claims)), slog.Int("count", n))
	return domain.Message{Message: "All refresh tokens revoked"}, nil
}

// RevokeUser revokes all refresh tokens of uid on behalf of an administrator
// or a password reset.
func (a *Authority) RevokeUser(ctx context.Context, uid string) error {
	n, err := a.Revocations.RevokeAllUserRefresh(ctx, uid)
	if err != nil {
		return internal(err)
	}
	a.Metrics.ObserveRevocations(scopeRefresh, n)
	return nil
}

func (a *Authority) revokeRefresh(ctx context.Context, claims jwtx.Claims) (int, error) {
	n, err := a.Revocations.RevokeAllUserRefresh(ctx, subject(claims))
	if err != nil {
		return 0, internal(err)
	}
	a.Metrics.ObserveRevocations(scopeRefresh, n)
	return n, nil
}

func (a *Authority) issuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	summary := Summary(user)

	access, _, err := a.Codec.Issue(summary, jwtx.KindAccess, 0)
	if err != nil {
		return domain.TokenPair{}, internal(err)
	}
	refresh, rc, err := a.Codec.Issue(summary, jwtx.KindRefresh, 0)
	if err != nil {
		return domain.TokenPair{}, internal(err)
	}

	if err := a.Revocations.RegisterActiveRefresh(ctx, user.ID, rc.ID, rc.Expiry()); err != nil {
		return domain.TokenPair{}, internal(err)
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

// subject is the user id a token speaks for. The embedded summary wins; sub
// is the fallback for tokens minted without one.
func subject(c jwtx.Claims) string {
	if c.User.UID != "" {
		return c.User.UID
	}
	return c.Subject
}

func result(err error) string {
	if err != nil {
		return metrics.ResultFailure
	}
	return metrics.ResultSuccess
}
