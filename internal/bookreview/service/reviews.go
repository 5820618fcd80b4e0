package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/idx"
)

type ReviewService struct {
	Store store.Store
}

func (s *ReviewService) AddReview(ctx context.Context, actor Actor, bookID string, in domain.ReviewInput) (domain.Review, error) {
	in.ReviewText = strings.TrimSpace(in.ReviewText)
	if err := validateLength("review_text", in.ReviewText, minReviewLen, maxReviewLen); err != nil {
		return domain.Review{}, err
	}
	if err := validateRating("rating", in.Rating); err != nil {
		return domain.Review{}, err
	}
	if _, err := getBook(ctx, s.Store, bookID); err != nil {
		return domain.Review{}, err
	}

	r := domain.Review{
		ID:         idx.NewString(),
		BookID:     bookID,
		UserID:     actor.ID,
		ReviewText: in.ReviewText,
		Rating:     in.Rating,
	}
	if err := s.Store.Reviews().CreateReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	return s.Store.Reviews().GetReview(ctx, r.ID)
}

func (s *ReviewService) ListReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	if _, err := getBook(ctx, s.Store, bookID); err != nil {
		return nil, err
	}
	reviews, err := s.Store.Reviews().ListReviewsByBook(ctx, bookID)
	return nonNil(reviews), err
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (domain.Review, error) {
	r, err := s.Store.Reviews().GetReview(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Review{}, ErrReviewNotFound
	}
	return r, err
}

// DeleteReview is allowed for the review's author and administrators.
func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, id string) error {
	r, err := s.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(r.UserID) {
		return ErrForbidden
	}
	if err := s.Store.Reviews().DeleteReview(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
