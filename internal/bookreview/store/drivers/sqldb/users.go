package sqldb

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, role,
	is_verified, is_active, created_at, updated_at`

type usersRepo struct{ c conn }

func scanUser(s scanner) (domain.User, error) {
	var (
		u                domain.User
		role             string
		created, updated int64
	)
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &role,
		&u.IsVerified, &u.IsActive, &created, &updated)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = fromUnix(created)
	u.UpdatedAt = fromUnix(updated)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.c.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.c.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := r.c.now()
	_, err := r.c.exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, string(u.Role),
		u.IsVerified, u.IsActive, now, now,
	)
	return err
}

func (r *usersRepo) ListUsers(ctx context.Context, p store.Page) ([]domain.User, error) {
	limit, offset := page(p)
	rows, err := r.c.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	return collect(rows, err, scanUser)
}

func (r *usersRepo) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*upd.Role))
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *upd.IsActive)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.c.now(), id)

	return r.c.execOne(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.c.execOne(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, r.c.now(), id)
}

func (r *usersRepo) MarkVerified(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `UPDATE users SET is_verified = ?, updated_at = ? WHERE id = ?`,
		true, r.c.now(), id)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM users WHERE id = ?`, id)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
