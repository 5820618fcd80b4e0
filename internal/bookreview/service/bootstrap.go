package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("already_bootstrapped")
	ErrBootstrapUnauthorized = errors.New("bootstrap_unauthorized")
	ErrBootstrapDisabled     = errors.New("bootstrap_disabled")
)

// BootstrapService creates the first superadmin of an empty deployment.
type BootstrapService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Token  string // pre-configured bootstrap token, empty disables bootstrap
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap returns the new superadmin. The account is verified and active
// so it can sign in straight away.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.User{}, ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	if err := validateAccount(&req.Username, &req.Email, &req.FirstName, &req.LastName, req.Password); err != nil {
		return domain.User{}, err
	}

	digest, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	admin := domain.User{
		ID:           idx.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: digest,
		Role:         domain.RoleSuperAdmin,
		IsVerified:   true,
		IsActive:     true,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Re-check inside the transaction so two racing requests cannot both
		// create an admin.
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", admin.ID))
	return s.Store.Users().GetUserByID(ctx, admin.ID)
}
