package sqldb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
)

const bookColumns = `id, user_id, title, author, publisher, published_date, page_count, language,
	rating, created_at, updated_at`

type booksRepo struct{ c conn }

func scanBook(s scanner) (domain.Book, error) {
	var (
		b                domain.Book
		userID           sql.NullString
		created, updated int64
	)
	err := s.Scan(&b.ID, &userID, &b.Title, &b.Author, &b.Publisher, &b.PublishedDate, &b.PageCount,
		&b.Language, &b.Rating, &created, &updated)
	if err != nil {
		return domain.Book{}, mapNotFound(err)
	}
	b.UserID = userID.String
	b.CreatedAt = fromUnix(created)
	b.UpdatedAt = fromUnix(updated)
	return b, nil
}

func (r *booksRepo) CreateBook(ctx context.Context, b domain.Book) error {
	now := r.c.now()
	_, err := r.c.exec(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, nullString(b.UserID), b.Title, b.Author, b.Publisher, b.PublishedDate, b.PageCount,
		b.Language, b.Rating, now, now,
	)
	return err
}

func (r *booksRepo) GetBook(ctx context.Context, id string) (domain.Book, error) {
	return scanBook(r.c.queryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
}

func (r *booksRepo) ListBooks(ctx context.Context, p store.Page) ([]domain.Book, error) {
	limit, offset := page(p)
	rows, err := r.c.query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	return collect(rows, err, scanBook)
}

func (r *booksRepo) ListBooksByUser(ctx context.Context, userID string, p store.Page) ([]domain.Book, error) {
	limit, offset := page(p)
	rows, err := r.c.query(ctx, `
		SELECT `+bookColumns+` FROM books WHERE user_id = ?
		ORDER BY id DESC LIMIT ? OFFSET ?`, userID, limit, offset)
	return collect(rows, err, scanBook)
}

func (r *booksRepo) UpdateBook(ctx context.Context, id string, upd domain.BookUpdate) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Author != nil {
		set("author", *upd.Author)
	}
	if upd.Publisher != nil {
		set("publisher", *upd.Publisher)
	}
	if upd.PublishedDate != nil {
		set("published_date", *upd.PublishedDate)
	}
	if upd.PageCount != nil {
		set("page_count", *upd.PageCount)
	}
	if upd.Language != nil {
		set("language", *upd.Language)
	}
	if upd.Rating != nil {
		set("rating", *upd.Rating)
	}
	set("updated_at", r.c.now())
	args = append(args, id)

	return r.c.execOne(ctx, `UPDATE books SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

func (r *booksRepo) DeleteBook(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM books WHERE id = ?`, id)
}
