package services

import (
	"context"
	"fmt"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

type ReviewService interface {
	AddReview(ctx context.Context, bookID string, rating int, comment string) (*types.Review, error)
	ListReviewsForBook(ctx context.Context, bookID string) ([]*types.Review, error)
}

type reviewService struct {
	log        *logger.Logger
	reviewRepo repos.ReviewRepo
}

func NewReviewService(log *logger.Logger, reviewRepo repos.ReviewRepo) ReviewService {
	return &reviewService{
		log:        log.With("service", "ReviewService"),
		reviewRepo: reviewRepo,
	}
}

func (s *reviewService) AddReview(ctx context.Context, bookID string, rating int, comment string) (*types.Review, error) {
	if bookID == "" {
		return nil, fmt.Errorf("book id is required")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	review := &types.Review{
		BookID:  bookID,
		Rating:  rating,
		Comment: comment,
	}
	created, err := s.reviewRepo.Create(ctx, nil, []*types.Review{review})
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return created[0], nil
}

func (s *reviewService) ListReviewsForBook(ctx context.Context, bookID string) ([]*types.Review, error) {
	return s.reviewRepo.ListByBookID(ctx, nil, bookID)
}
