package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

// UserService is the administrative view of accounts.
type UserService struct {
	Store    store.Store
	Sessions SessionRevoker
}

func (s *UserService) ListUsers(ctx context.Context, p store.Page) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx, p)
	return nonNil(users), err
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateUser changes a user's role or active flag. Only a superadmin may
// grant or take away the admin roles, and nobody may change their own
// account. Deactivating a user ends their sessions.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id string, upd domain.UserUpdate) (domain.User, error) {
	if !actor.Role.IsAdmin() {
		return domain.User{}, ErrForbidden
	}
	if actor.ID == id {
		return domain.User{}, ErrForbidden
	}

	target, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if upd.Role != nil {
		if _, ok := domain.ParseRole(string(*upd.Role)); !ok {
			return domain.User{}, invalid("role", "unknown role %q", *upd.Role)
		}
		if upd.Role.IsAdmin() && actor.Role != domain.RoleSuperAdmin {
			return domain.User{}, ErrForbidden
		}
	}
	if target.Role.IsAdmin() && actor.Role != domain.RoleSuperAdmin {
		return domain.User{}, ErrForbidden
	}

	if err := s.Store.Users().UpdateUser(ctx, id, upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	l := slogx.FromContext(ctx)
	if upd.IsActive != nil && !*upd.IsActive && target.IsActive {
		if err := s.Sessions.RevokeUser(ctx, id); err != nil {
			return domain.User{}, err
		}
		l.Info("user deactivated", slog.String("user_id", id), slog.String("by", actor.ID))
	}
	if upd.Role != nil && *upd.Role != target.Role {
		l.Info("user role changed", slog.String("user_id", id),
			slog.String("from", target.Role.String()), slog.String("to", upd.Role.String()))
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes an account. Their books and reviews remain without an
// owner.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if actor.Role != domain.RoleSuperAdmin || actor.ID == id {
		return ErrForbidden
	}

	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Sessions.RevokeUser(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", id), slog.String("by", actor.ID))
	return nil
}
