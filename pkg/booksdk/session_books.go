package booksdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Books
// ============================================================================

func (s *Session) ListBooks(ctx context.Context, p Page) ([]Book, error) {
	var books []Book
	if err := s.call(ctx, http.MethodGet, "/api/v1/books"+p.query(), nil, &books, http.StatusOK); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Session) ListBooksByUser(ctx context.Context, userID string, p Page) ([]Book, error) {
	var books []Book
	path := "/api/v1/books/user/" + url.PathEscape(userID) + p.query()
	if err := s.call(ctx, http.MethodGet, path, nil, &books, http.StatusOK); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Session) CreateBook(ctx context.Context, req BookRequest) (*Book, error) {
	var b Book
	if err := s.call(ctx, http.MethodPost, "/api/v1/books", req, &b, http.StatusCreated); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Session) GetBook(ctx context.Context, id string) (*BookDetail, error) {
	var b BookDetail
	if err := s.call(ctx, http.MethodGet, "/api/v1/books/"+url.PathEscape(id), nil, &b, http.StatusOK); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook is allowed for the book's owner and administrators.
func (s *Session) UpdateBook(ctx context.Context, id string, req UpdateBookRequest) (*BookDetail, error) {
	var b BookDetail
	if err := s.call(ctx, http.MethodPatch, "/api/v1/books/"+url.PathEscape(id), req, &b, http.StatusOK); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Session) DeleteBook(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/books/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Reviews
// ============================================================================

func (s *Session) AddReview(ctx context.Context, bookID string, req ReviewRequest) (*Review, error) {
	var r Review
	if err := s.call(ctx, http.MethodPost, "/api/v1/reviews/book/"+url.PathEscape(bookID), req, &r, http.StatusCreated); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Session) ListReviews(ctx context.Context, bookID string) ([]Review, error) {
	var reviews []Review
	if err := s.call(ctx, http.MethodGet, "/api/v1/reviews/book/"+url.PathEscape(bookID), nil, &reviews, http.StatusOK); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Session) GetReview(ctx context.Context, id string) (*Review, error) {
	var r Review
	if err := s.call(ctx, http.MethodGet, "/api/v1/reviews/"+url.PathEscape(id), nil, &r, http.StatusOK); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Session) DeleteReview(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/reviews/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Tags
// ============================================================================

func (s *Session) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := s.call(ctx, http.MethodGet, "/api/v1/tags", nil, &tags, http.StatusOK); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Session) GetTag(ctx context.Context, id string) (*Tag, error) {
	var t Tag
	if err := s.call(ctx, http.MethodGet, "/api/v1/tags/"+url.PathEscape(id), nil, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag requires an administrator.
func (s *Session) CreateTag(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	if err := s.call(ctx, http.MethodPost, "/api/v1/tags", TagRequest{Name: name}, &t, http.StatusCreated); err != nil {
		return nil, err
	}
	return &t, nil
}

// RenameTag requires an administrator.
func (s *Session) RenameTag(ctx context.Context, id, name string) (*Tag, error) {
	var t Tag
	if err := s.call(ctx, http.MethodPut, "/api/v1/tags/"+url.PathEscape(id), TagRequest{Name: name}, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTag requires an administrator.
func (s *Session) DeleteTag(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/tags/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// TagBook attaches tags to a book by name.
func (s *Session) TagBook(ctx context.Context, bookID string, names ...string) (*BookDetail, error) {
	req := TagBookRequest{Tags: make([]TagRequest, len(names))}
	for i, n := range names {
		req.Tags[i] = TagRequest{Name: n}
	}

	var b BookDetail
	if err := s.call(ctx, http.MethodPost, "/api/v1/tags/book/"+url.PathEscape(bookID), req, &b, http.StatusOK); err != nil {
		return nil, err
	}
	return &b, nil
}

// ============================================================================
// Administration
// ============================================================================

func (s *Session) ListUsers(ctx context.Context, p Page) ([]User, error) {
	var users []User
	if err := s.call(ctx, http.MethodGet, "/api/v1/users"+p.query(), nil, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var u User
	if err := s.call(ctx, http.MethodPatch, "/api/v1/users/"+url.PathEscape(id), req, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser requires a superadmin.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/users/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
