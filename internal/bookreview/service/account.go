package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/mail"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

// Default lifetimes of emailed links.
const (
	DefaultVerificationTTL = 24 * time.Hour
	DefaultResetTTL        = 30 * time.Minute
)

// Outbox accepts emails for background delivery.
type Outbox interface {
	Enqueue(msg mail.Message) error
}

// SessionRevoker ends every refresh session of a user.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, uid string) error
}

// AccountService implements the self-service account flows: signup, email
// verification and password reset.
type AccountService struct {
	Store    store.Store
	Hasher   *cryptox.Hasher
	Sessions SessionRevoker
	Outbox   Outbox

	// BaseURL prefixes the links sent by email, e.g. https://books.example.
	BaseURL string

	VerificationTTL time.Duration
	ResetTTL        time.Duration

	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AccountService) ttl(purpose domain.TokenPurpose) time.Duration {
	if purpose == domain.PurposePasswordReset {
		if s.ResetTTL > 0 {
			return s.ResetTTL
		}
		return DefaultResetTTL
	}
	if s.VerificationTTL > 0 {
		return s.VerificationTTL
	}
	return DefaultVerificationTTL
}

// Signup registers a user with the default role and emails a verification
// link.
func (s *AccountService) Signup(ctx context.Context, req domain.Signup) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := validateAccount(&req.Username, &req.Email, &req.FirstName, &req.LastName, req.Password); err != nil {
		return domain.User{}, err
	}

	digest, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: digest,
		Role:         domain.RoleUser,
		IsActive:     true,
	}

	var token string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserAlreadyExists
			}
			return err
		}
		token, err = s.issueToken(ctx, tx, user.ID, domain.PurposeEmailVerification)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user signed up", slog.String("user_id", user.ID))
	s.sendVerification(ctx, created, token)
	return created, nil
}

// VerifyEmail consumes a verification link.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) error {
	t, err := s.lookupToken(ctx, token, domain.PurposeEmailVerification)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.OneTimeTokens().ConsumeToken(ctx, t.ID, s.now()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		return tx.Users().MarkVerified(ctx, t.UserID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("email verified", slog.String("user_id", t.UserID))
	return nil
}

// ResendVerification emails a fresh link. It reports success for unknown
// and already verified addresses so callers cannot probe for accounts.
func (s *AccountService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.IsVerified || !user.IsActive {
		return nil
	}

	token, err := s.issueToken(ctx, s.Store, user.ID, domain.PurposeEmailVerification)
	if err != nil {
		return err
	}
	s.sendVerification(ctx, user, token)
	return nil
}

// RequestPasswordReset emails a reset link to an active account. Like
// ResendVerification it never reveals whether the address is registered.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}

	token, err := s.issueToken(ctx, s.Store, user.ID, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	msg, err := mail.PasswordResetEmail(user.Email, displayName(user), s.link("auth/password-reset", token),
		s.ttl(domain.PurposePasswordReset))
	if err != nil {
		return err
	}
	s.enqueue(ctx, msg)
	return nil
}

// CheckResetToken reports whether a reset link can still be used.
func (s *AccountService) CheckResetToken(ctx context.Context, token string) error {
	_, err := s.lookupToken(ctx, token, domain.PurposePasswordReset)
	return err
}

// ResetPassword sets a new password from a reset link and signs the user
// out everywhere.
func (s *AccountService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	t, err := s.lookupToken(ctx, token, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	digest, err := s.Hasher.Hash(password)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.OneTimeTokens().ConsumeToken(ctx, t.ID, s.now()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		return tx.Users().UpdatePasswordHash(ctx, t.UserID, digest)
	})
	if err != nil {
		return err
	}

	if err := s.Sessions.RevokeUser(ctx, t.UserID); err != nil {
		return fmt.Errorf("revoke sessions after reset: %w", err)
	}
	slogx.FromContext(ctx).Info("password reset", slog.String("user_id", t.UserID))
	return nil
}

// Me returns the caller's profile with their books and reviews.
func (s *AccountService) Me(ctx context.Context, uid string) (domain.Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrUserNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}

	books, err := s.Store.Books().ListBooksByUser(ctx, uid, store.DefaultPage)
	if err != nil {
		return domain.Profile{}, err
	}
	reviews, err := s.Store.Reviews().ListReviewsByUser(ctx, uid)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{User: user, Books: nonNil(books), Reviews: nonNil(reviews)}, nil
}

// issueToken replaces any outstanding link of the same purpose and returns
// the new plaintext token. Only its fingerprint is stored.
func (s *AccountService) issueToken(ctx context.Context, st store.Store, uid string, purpose domain.TokenPurpose) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize)
	if err != nil {
		return "", err
	}

	repo := st.OneTimeTokens()
	if err := repo.DeleteUserTokens(ctx, uid, purpose); err != nil {
		return "", err
	}
	err = repo.CreateToken(ctx, domain.OneTimeToken{
		ID:        idx.NewString(),
		UserID:    uid,
		Purpose:   purpose,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: s.now().Add(s.ttl(purpose)),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AccountService) lookupToken(ctx context.Context, token string, purpose domain.TokenPurpose) (domain.OneTimeToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.OneTimeToken{}, ErrTokenInvalid
	}

	t, err := s.Store.OneTimeTokens().GetTokenByHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return domain.OneTimeToken{}, ErrTokenInvalid
	}
	if err != nil {
		return domain.OneTimeToken{}, err
	}

	if t.Purpose != purpose || t.UsedAt != nil || !s.now().Before(t.ExpiresAt) {
		return domain.OneTimeToken{}, ErrTokenInvalid
	}
	return t, nil
}

func (s *AccountService) sendVerification(ctx context.Context, user domain.User, token string) {
	msg, err := mail.VerificationEmail(user.Email, displayName(user), s.link("auth/verify", token),
		s.ttl(domain.PurposeEmailVerification))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to render verification email", slog.Any("error", err))
		return
	}
	s.enqueue(ctx, msg)
}

// enqueue hands msg to the outbox. A full queue is logged; the user can ask
// for the link again.
func (s *AccountService) enqueue(ctx context.Context, msg mail.Message) {
	if s.Outbox == nil {
		return
	}
	if err := s.Outbox.Enqueue(msg); err != nil {
		slogx.FromContext(ctx).Error("failed to queue email",
			slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}

// link builds <BaseURL>/api/v1/<path>/<token>.
func (s *AccountService) link(path, token string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/api/v1/" + path + "/" + url.PathEscape(token)
}

func displayName(u domain.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
