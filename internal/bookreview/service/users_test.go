package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateUserPermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	rv := &revoker{}
	svc := &UserService{Store: st, Sessions: rv}

	super := createUser(t, st, "super", domain.RoleSuperAdmin)
	admin := createUser(t, st, "admin", domain.RoleAdmin)
	other := createUser(t, st, "admin2", domain.RoleAdmin)
	user := createUser(t, st, "user", domain.RoleUser)

	t.Run("regular users cannot administer", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, actorOf(user), admin.ID, domain.UserUpdate{IsActive: ptr(false)})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("nobody edits themselves", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, actorOf(super), super.ID, domain.UserUpdate{Role: ptr(domain.RoleUser)})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin cannot grant admin", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, actorOf(admin), user.ID, domain.UserUpdate{Role: ptr(domain.RoleAdmin)})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin cannot touch another admin", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, actorOf(admin), other.ID, domain.UserUpdate{IsActive: ptr(false)})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, actorOf(super), user.ID, domain.UserUpdate{Role: ptr(domain.Role("owner"))})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, actorOf(super), "missing", domain.UserUpdate{IsActive: ptr(false)})
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("admin promotes to manager", func(t *testing.T) {
		got, err := svc.UpdateUser(ctx, actorOf(admin), user.ID, domain.UserUpdate{Role: ptr(domain.RoleManager)})
		require.NoError(t, err)
		require.Equal(t, domain.RoleManager, got.Role)
		require.Empty(t, rv.revoked())
	})

	t.Run("superadmin grants admin", func(t *testing.T) {
		got, err := svc.UpdateUser(ctx, actorOf(super), user.ID, domain.UserUpdate{Role: ptr(domain.RoleAdmin)})
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("deactivation revokes sessions", func(t *testing.T) {
		got, err := svc.UpdateUser(ctx, actorOf(super), other.ID, domain.UserUpdate{IsActive: ptr(false)})
		require.NoError(t, err)
		require.False(t, got.IsActive)
		require.Equal(t, []string{other.ID}, rv.revoked())
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	rv := &revoker{}
	svc := &UserService{Store: st, Sessions: rv}

	super := createUser(t, st, "super", domain.RoleSuperAdmin)
	admin := createUser(t, st, "admin", domain.RoleAdmin)
	user := createUser(t, st, "user", domain.RoleUser)

	require.ErrorIs(t, svc.DeleteUser(ctx, actorOf(admin), user.ID), ErrForbidden)
	require.ErrorIs(t, svc.DeleteUser(ctx, actorOf(super), super.ID), ErrForbidden)
	require.ErrorIs(t, svc.DeleteUser(ctx, actorOf(super), "missing"), ErrUserNotFound)

	require.NoError(t, svc.DeleteUser(ctx, actorOf(super), user.ID))
	require.Equal(t, []string{user.ID}, rv.revoked())

	_, err := svc.GetUser(ctx, user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.ListUsers(ctx, store.DefaultPage)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
