package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers (sqlite, postgres)
// implement it and expose one sub-repository per aggregate. Sub-repositories
// obtained from a Tx run inside that transaction.
type Store interface {
	Users() Users
	Books() Books
	Reviews() Reviews
	Tags() Tags
	OneTimeTokens() OneTimeTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Page bounds list queries.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is used when a caller does not ask for a specific page.
var DefaultPage = Page{Limit: 50}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects the email already lower-cased.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email or username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	ListUsers(ctx context.Context, p Page) ([]domain.User, error)

	// UpdateUser applies the non-nil fields of upd and bumps updated_at.
	UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) error

	UpdatePasswordHash(ctx context.Context, id, hash string) error

	MarkVerified(ctx context.Context, id string) error

	// DeleteUser cascades to one-time tokens and orphans books and reviews.
	DeleteUser(ctx context.Context, id string) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Books interface {
	CreateBook(ctx context.Context, b domain.Book) error
	GetBook(ctx context.Context, id string) (domain.Book, error)
	ListBooks(ctx context.Context, p Page) ([]domain.Book, error)
	ListBooksByUser(ctx context.Context, userID string, p Page) ([]domain.Book, error)

	// UpdateBook applies the non-nil fields of upd and bumps updated_at.
	UpdateBook(ctx context.Context, id string, upd domain.BookUpdate) error

	// DeleteBook cascades to reviews and tag links.
	DeleteBook(ctx context.Context, id string) error
}

type Reviews interface {
	CreateReview(ctx context.Context, r domain.Review) error
	GetReview(ctx context.Context, id string) (domain.Review, error)
	ListReviewsByBook(ctx context.Context, bookID string) ([]domain.Review, error)
	ListReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type Tags interface {
	// CreateTag returns ErrAlreadyExists when the name is taken.
	CreateTag(ctx context.Context, t domain.Tag) error
	GetTag(ctx context.Context, id string) (domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	RenameTag(ctx context.Context, id, name string) error
	DeleteTag(ctx context.Context, id string) error

	// AttachTag links a tag to a book. Linking twice is not an error.
	AttachTag(ctx context.Context, bookID, tagID string) error
	ListTagsByBook(ctx context.Context, bookID string) ([]domain.Tag, error)
}

type OneTimeTokens interface {
	CreateToken(ctx context.Context, t domain.OneTimeToken) error
	GetTokenByHash(ctx context.Context, hash string) (domain.OneTimeToken, error)

	// ConsumeToken sets used_at on an unused token. It returns ErrNotFound if
	// the token does not exist or was already consumed.
	ConsumeToken(ctx context.Context, id string, at time.Time) error

	// DeleteUserTokens removes a user's outstanding tokens for purpose.
	DeleteUserTokens(ctx context.Context, userID string, purpose domain.TokenPurpose) error

	// DeleteStaleTokens removes tokens that expired or were used before now.
	DeleteStaleTokens(ctx context.Context, now time.Time) (int64, error)
}
