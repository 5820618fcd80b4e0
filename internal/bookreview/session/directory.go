package session

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
)

var ErrUserNotFound = errors.New("user_not_found")

// UserDirectory is the view of accounts the Authority needs. Lookups return
// ErrUserNotFound for unknown users.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)

	// UpdatePasswordHash persists an upgraded digest after login.
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// StoreDirectory adapts the relational store to UserDirectory.
type StoreDirectory struct {
	Store store.Store
}

var _ UserDirectory = StoreDirectory{}

func (d StoreDirectory) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := d.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	return u, mapStoreErr(err)
}

func (d StoreDirectory) FindByID(ctx context.Context, id string) (domain.User, error) {
	u, err := d.Store.Users().GetUserByID(ctx, id)
	return u, mapStoreErr(err)
}

func (d StoreDirectory) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return mapStoreErr(d.Store.Users().UpdatePasswordHash(ctx, id, hash))
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
