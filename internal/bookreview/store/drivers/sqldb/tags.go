package sqldb

import (
	"context"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
)

type tagsRepo struct{ c conn }

func scanTag(s scanner) (domain.Tag, error) {
	var (
		t       domain.Tag
		created int64
	)
	if err := s.Scan(&t.ID, &t.Name, &created); err != nil {
		return domain.Tag{}, mapNotFound(err)
	}
	t.CreatedAt = fromUnix(created)
	return t, nil
}

func (r *tagsRepo) CreateTag(ctx context.Context, t domain.Tag) error {
	_, err := r.c.exec(ctx, `INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)`,
		t.ID, t.Name, r.c.now())
	return err
}

func (r *tagsRepo) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	return scanTag(r.c.queryRow(ctx, `SELECT id, name, created_at FROM tags WHERE id = ?`, id))
}

func (r *tagsRepo) GetTagByName(ctx context.Context, name string) (domain.Tag, error) {
	return scanTag(r.c.queryRow(ctx, `SELECT id, name, created_at FROM tags WHERE name = ?`, name))
}

func (r *tagsRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.c.query(ctx, `SELECT id, name, created_at FROM tags ORDER BY name`)
	return collect(rows, err, scanTag)
}

func (r *tagsRepo) RenameTag(ctx context.Context, id, name string) error {
	return r.c.execOne(ctx, `UPDATE tags SET name = ? WHERE id = ?`, name, id)
}

func (r *tagsRepo) DeleteTag(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM tags WHERE id = ?`, id)
}

func (r *tagsRepo) AttachTag(ctx context.Context, bookID, tagID string) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO book_tags (book_id, tag_id) VALUES (?, ?)
		ON CONFLICT (book_id, tag_id) DO NOTHING`, bookID, tagID)
	return err
}

func (r *tagsRepo) ListTagsByBook(ctx context.Context, bookID string) ([]domain.Tag, error) {
	rows, err := r.c.query(ctx, `
		SELECT t.id, t.name, t.created_at
		FROM tags t JOIN book_tags bt ON bt.tag_id = t.id
		WHERE bt.book_id = ?
		ORDER BY t.name`, bookID)
	return collect(rows, err, scanTag)
}
