package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
)

type tokensRepo struct{ c conn }

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.OneTimeToken) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO one_time_tokens (id, user_id, purpose, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, string(t.Purpose), t.TokenHash, t.ExpiresAt.Unix(), r.c.now(),
	)
	return err
}

func (r *tokensRepo) GetTokenByHash(ctx context.Context, hash string) (domain.OneTimeToken, error) {
	var (
		t                domain.OneTimeToken
		purpose          string
		expires, created int64
		used             sql.NullInt64
	)
	err := r.c.queryRow(ctx, `
		SELECT id, user_id, purpose, token_hash, expires_at, used_at, created_at
		FROM one_time_tokens WHERE token_hash = ?`, hash,
	).Scan(&t.ID, &t.UserID, &purpose, &t.TokenHash, &expires, &used, &created)
	if err != nil {
		return domain.OneTimeToken{}, mapNotFound(err)
	}

	t.Purpose = domain.TokenPurpose(purpose)
	t.ExpiresAt = fromUnix(expires)
	t.CreatedAt = fromUnix(created)
	if used.Valid {
		at := fromUnix(used.Int64)
		t.UsedAt = &at
	}
	return t, nil
}

func (r *tokensRepo) ConsumeToken(ctx context.Context, id string, at time.Time) error {
	return r.c.execOne(ctx, `UPDATE one_time_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		at.Unix(), id)
}

func (r *tokensRepo) DeleteUserTokens(ctx context.Context, userID string, purpose domain.TokenPurpose) error {
	_, err := r.c.exec(ctx, `DELETE FROM one_time_tokens WHERE user_id = ? AND purpose = ?`,
		userID, string(purpose))
	return err
}

func (r *tokensRepo) DeleteStaleTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.c.exec(ctx, `
		DELETE FROM one_time_tokens
		WHERE expires_at <= ? OR used_at IS NOT NULL`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
