package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
)

const reviewColumns = `id, book_id, user_id, review_text, rating, created_at, updated_at`

type reviewsRepo struct{ c conn }

func scanReview(s scanner) (domain.Review, error) {
	var (
		rv               domain.Review
		userID           sql.NullString
		created, updated int64
	)
	if err := s.Scan(&rv.ID, &rv.BookID, &userID, &rv.ReviewText, &rv.Rating, &created, &updated); err != nil {
		return domain.Review{}, mapNotFound(err)
	}
	rv.UserID = userID.String
	rv.CreatedAt = fromUnix(created)
	rv.UpdatedAt = fromUnix(updated)
	return rv, nil
}

func (r *reviewsRepo) CreateReview(ctx context.Context, rv domain.Review) error {
	now := r.c.now()
	_, err := r.c.exec(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.BookID, nullString(rv.UserID), rv.ReviewText, rv.Rating, now, now,
	)
	return err
}

func (r *reviewsRepo) GetReview(ctx context.Context, id string) (domain.Review, error) {
	return scanReview(r.c.queryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id))
}

func (r *reviewsRepo) ListReviewsByBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	rows, err := r.c.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE book_id = ? ORDER BY id`, bookID)
	return collect(rows, err, scanReview)
}

func (r *reviewsRepo) ListReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	rows, err := r.c.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = ? ORDER BY id`, userID)
	return collect(rows, err, scanReview)
}

func (r *reviewsRepo) DeleteReview(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM reviews WHERE id = ?`, id)
}
