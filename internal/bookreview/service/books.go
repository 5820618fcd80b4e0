package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
)

type BookService struct {
	Store store.Store
}

func (s *BookService) CreateBook(ctx context.Context, actor Actor, in domain.BookInput) (domain.Book, error) {
	if err := validateBook(&in); err != nil {
		return domain.Book{}, err
	}

	b := domain.Book{
		ID:            idx.NewString(),
		UserID:        actor.ID,
		Title:         in.Title,
		Author:        in.Author,
		Publisher:     in.Publisher,
		PublishedDate: in.PublishedDate,
		PageCount:     in.PageCount,
		Language:      in.Language,
		Rating:        in.Rating,
	}
	if err := s.Store.Books().CreateBook(ctx, b); err != nil {
		return domain.Book{}, err
	}
	return s.Store.Books().GetBook(ctx, b.ID)
}

func (s *BookService) ListBooks(ctx context.Context, p store.Page) ([]domain.Book, error) {
	books, err := s.Store.Books().ListBooks(ctx, p)
	return nonNil(books), err
}

func (s *BookService) ListBooksByUser(ctx context.Context, uid string, p store.Page) ([]domain.Book, error) {
	books, err := s.Store.Books().ListBooksByUser(ctx, uid, p)
	return nonNil(books), err
}

// GetBook returns a book with its reviews and tags.
func (s *BookService) GetBook(ctx context.Context, id string) (domain.BookDetail, error) {
	return bookDetail(ctx, s.Store, id)
}

func (s *BookService) UpdateBook(ctx context.Context, actor Actor, id string, upd domain.BookUpdate) (domain.BookDetail, error) {
	if err := validateBookUpdate(upd); err != nil {
		return domain.BookDetail{}, err
	}
	if _, err := s.owned(ctx, actor, id); err != nil {
		return domain.BookDetail{}, err
	}

	if err := s.Store.Books().UpdateBook(ctx, id, upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.BookDetail{}, ErrBookNotFound
		}
		return domain.BookDetail{}, err
	}
	return bookDetail(ctx, s.Store, id)
}

// DeleteBook removes a book together with its reviews.
func (s *BookService) DeleteBook(ctx context.Context, actor Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Store.Books().DeleteBook(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

func (s *BookService) owned(ctx context.Context, actor Actor, id string) (domain.Book, error) {
	b, err := getBook(ctx, s.Store, id)
	if err != nil {
		return domain.Book{}, err
	}
	if !actor.CanModify(b.UserID) {
		return domain.Book{}, ErrForbidden
	}
	return b, nil
}

func getBook(ctx context.Context, st store.Store, id string) (domain.Book, error) {
	b, err := st.Books().GetBook(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Book{}, ErrBookNotFound
	}
	return b, err
}

func bookDetail(ctx context.Context, st store.Store, id string) (domain.BookDetail, error) {
	b, err := getBook(ctx, st, id)
	if err != nil {
		return domain.BookDetail{}, err
	}
	reviews, err := st.Reviews().ListReviewsByBook(ctx, id)
	if err != nil {
		return domain.BookDetail{}, err
	}
	tags, err := st.Tags().ListTagsByBook(ctx, id)
	if err != nil {
		return domain.BookDetail{}, err
	}
	return domain.BookDetail{Book: b, Reviews: nonNil(reviews), Tags: nonNil(tags)}, nil
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
