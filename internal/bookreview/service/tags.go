package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
)

// TagService manages the shared tag vocabulary. Tag names are stored
// lower-cased.
type TagService struct {
	Store store.Store
}

func (s *TagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.Store.Tags().ListTags(ctx)
	return nonNil(tags), err
}

func (s *TagService) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	t, err := s.Store.Tags().GetTag(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Tag{}, ErrTagNotFound
	}
	return t, err
}

func (s *TagService) CreateTag(ctx context.Context, in domain.TagInput) (domain.Tag, error) {
	name, err := normalizeTag(in.Name)
	if err != nil {
		return domain.Tag{}, err
	}

	t := domain.Tag{ID: idx.NewString(), Name: name}
	if err := s.Store.Tags().CreateTag(ctx, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Tag{}, ErrTagAlreadyExists
		}
		return domain.Tag{}, err
	}
	return s.GetTag(ctx, t.ID)
}

func (s *TagService) RenameTag(ctx context.Context, id string, in domain.TagInput) (domain.Tag, error) {
	name, err := normalizeTag(in.Name)
	if err != nil {
		return domain.Tag{}, err
	}

	err = s.Store.Tags().RenameTag(ctx, id, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Tag{}, ErrTagNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Tag{}, ErrTagAlreadyExists
	case err != nil:
		return domain.Tag{}, err
	}
	return s.GetTag(ctx, id)
}

func (s *TagService) DeleteTag(ctx context.Context, id string) error {
	err := s.Store.Tags().DeleteTag(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTagNotFound
	}
	return err
}

// AddTagsToBook attaches tags to a book by name, creating any that do not
// exist yet. Only the book's owner or an administrator may tag it.
func (s *TagService) AddTagsToBook(ctx context.Context, actor Actor, bookID string, in domain.TagsToBook) (domain.BookDetail, error) {
	if len(in.Tags) == 0 {
		return domain.BookDetail{}, invalid("tags", "must not be empty")
	}

	names := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		name, err := normalizeTag(t.Name)
		if err != nil {
			return domain.BookDetail{}, err
		}
		names = append(names, name)
	}

	b, err := getBook(ctx, s.Store, bookID)
	if err != nil {
		return domain.BookDetail{}, err
	}
	if !actor.CanModify(b.UserID) {
		return domain.BookDetail{}, ErrForbidden
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, name := range names {
			tag, err := tx.Tags().GetTagByName(ctx, name)
			if errors.Is(err, store.ErrNotFound) {
				tag = domain.Tag{ID: idx.NewString(), Name: name}
				err = tx.Tags().CreateTag(ctx, tag)
			}
			if err != nil {
				return err
			}
			if err := tx.Tags().AttachTag(ctx, bookID, tag.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.BookDetail{}, err
	}
	return bookDetail(ctx, s.Store, bookID)
}
