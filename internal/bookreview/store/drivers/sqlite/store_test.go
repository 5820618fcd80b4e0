package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/sqlite"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.NewString(),
		Username:     email,
		Email:        email,
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func newBook(t *testing.T, s store.Store, owner string) domain.Book {
	t.Helper()
	b := domain.Book{
		ID:        idx.NewString(),
		UserID:    owner,
		Title:     "Dune",
		Author:    "Frank Herbert",
		PageCount: 412,
		Language:  "en",
		Rating:    5,
	}
	require.NoError(t, s.Books().CreateBook(context.Background(), b))
	return b
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := newUser(t, s, "user@example.com")

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, got.Email)
		require.Equal(t, domain.RoleUser, got.Role)
		require.True(t, got.IsActive)
		require.False(t, got.IsVerified)
		require.False(t, got.CreatedAt.IsZero())

		got, err = s.Users().GetUserByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)

		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := u
		dup.ID = idx.NewString()
		dup.Username = "someone-else"
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update role and active flag", func(t *testing.T) {
		admin := domain.RoleAdmin
		inactive := false
		require.NoError(t, s.Users().UpdateUser(ctx, u.ID, domain.UserUpdate{Role: &admin, IsActive: &inactive}))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)
		require.False(t, got.IsActive)

		err = s.Users().UpdateUser(ctx, "missing", domain.UserUpdate{Role: &admin})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("verify and rehash", func(t *testing.T) {
		require.NoError(t, s.Users().MarkVerified(ctx, u.ID))
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.IsVerified)
		require.Equal(t, "new-hash", got.PasswordHash)
	})

	t.Run("list", func(t *testing.T) {
		newUser(t, s, "second@example.com")
		users, err := s.Users().ListUsers(ctx, store.Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 2)

		users, err = s.Users().ListUsers(ctx, store.Page{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, users, 1)
	})
}

func TestDeleteUserOrphansContent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	u := newUser(t, s, "owner@example.com")
	b := newBook(t, s, u.ID)
	require.NoError(t, s.Reviews().CreateReview(ctx, domain.Review{
		ID: idx.NewString(), BookID: b.ID, UserID: u.ID, ReviewText: "great", Rating: 5,
	}))
	require.NoError(t, s.OneTimeTokens().CreateToken(ctx, domain.OneTimeToken{
		ID: idx.NewString(), UserID: u.ID, Purpose: domain.PurposeEmailVerification,
		TokenHash: "fp", ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
	require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)

	got, err := s.Books().GetBook(ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, got.UserID)

	reviews, err := s.Reviews().ListReviewsByBook(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Empty(t, reviews[0].UserID)

	_, err = s.OneTimeTokens().GetTokenByHash(ctx, "fp")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestBooks(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser(t, s, "reader@example.com")
	b := newBook(t, s, u.ID)

	got, err := s.Books().GetBook(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, b.Title, got.Title)
	require.Equal(t, u.ID, got.UserID)
	require.Equal(t, 412, got.PageCount)

	title := "Dune Messiah"
	rating := 4
	require.NoError(t, s.Books().UpdateBook(ctx, b.ID, domain.BookUpdate{Title: &title, Rating: &rating}))
	got, err = s.Books().GetBook(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, title, got.Title)
	require.Equal(t, 4, got.Rating)
	require.Equal(t, "Frank Herbert", got.Author)

	newBook(t, s, u.ID)
	mine, err := s.Books().ListBooksByUser(ctx, u.ID, store.DefaultPage)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	all, err := s.Books().ListBooks(ctx, store.Page{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, s.Books().DeleteBook(ctx, b.ID))
	_, err = s.Books().GetBook(ctx, b.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Books().UpdateBook(ctx, b.ID, domain.BookUpdate{Title: &title}), store.ErrNotFound)
}

func TestReviewsCascadeWithBook(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser(t, s, "critic@example.com")
	b := newBook(t, s, u.ID)

	rv := domain.Review{ID: idx.NewString(), BookID: b.ID, UserID: u.ID, ReviewText: "meh", Rating: 2}
	require.NoError(t, s.Reviews().CreateReview(ctx, rv))

	got, err := s.Reviews().GetReview(ctx, rv.ID)
	require.NoError(t, err)
	require.Equal(t, "meh", got.ReviewText)

	byUser, err := s.Reviews().ListReviewsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	require.NoError(t, s.Books().DeleteBook(ctx, b.ID))
	_, err = s.Reviews().GetReview(ctx, rv.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser(t, s, "tagger@example.com")
	b := newBook(t, s, u.ID)

	scifi := domain.Tag{ID: idx.NewString(), Name: "sci-fi"}
	require.NoError(t, s.Tags().CreateTag(ctx, scifi))
	err := s.Tags().CreateTag(ctx, domain.Tag{ID: idx.NewString(), Name: "sci-fi"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Tags().GetTagByName(ctx, "sci-fi")
	require.NoError(t, err)
	require.Equal(t, scifi.ID, got.ID)

	require.NoError(t, s.Tags().AttachTag(ctx, b.ID, scifi.ID))
	require.NoError(t, s.Tags().AttachTag(ctx, b.ID, scifi.ID), "attaching twice is fine")

	tags, err := s.Tags().ListTagsByBook(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	require.NoError(t, s.Tags().RenameTag(ctx, scifi.ID, "science-fiction"))
	got, err = s.Tags().GetTag(ctx, scifi.ID)
	require.NoError(t, err)
	require.Equal(t, "science-fiction", got.Name)

	require.NoError(t, s.Tags().DeleteTag(ctx, scifi.ID))
	tags, err = s.Tags().ListTagsByBook(ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, tags)
	require.ErrorIs(t, s.Tags().DeleteTag(ctx, scifi.ID), store.ErrNotFound)
}

func TestOneTimeTokens(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser(t, s, "verify@example.com")
	now := time.Now()

	live := domain.OneTimeToken{
		ID: idx.NewString(), UserID: u.ID, Purpose: domain.PurposeEmailVerification,
		TokenHash: "live", ExpiresAt: now.Add(time.Hour),
	}
	expired := domain.OneTimeToken{
		ID: idx.NewString(), UserID: u.ID, Purpose: domain.PurposePasswordReset,
		TokenHash: "expired", ExpiresAt: now.Add(-time.Hour),
	}
	require.NoError(t, s.OneTimeTokens().CreateToken(ctx, live))
	require.NoError(t, s.OneTimeTokens().CreateToken(ctx, expired))

	got, err := s.OneTimeTokens().GetTokenByHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, domain.PurposeEmailVerification, got.Purpose)
	require.Nil(t, got.UsedAt)

	require.NoError(t, s.OneTimeTokens().ConsumeToken(ctx, live.ID, now))
	require.ErrorIs(t, s.OneTimeTokens().ConsumeToken(ctx, live.ID, now), store.ErrNotFound)

	got, err = s.OneTimeTokens().GetTokenByHash(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got.UsedAt)

	n, err := s.OneTimeTokens().DeleteStaleTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Tags().CreateTag(ctx, domain.Tag{ID: idx.NewString(), Name: "rolled-back"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Tags().GetTagByName(ctx, "rolled-back")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tags().CreateTag(ctx, domain.Tag{ID: idx.NewString(), Name: "committed"})
	}))
	_, err = s.Tags().GetTagByName(ctx, "committed")
	require.NoError(t, err)
}
