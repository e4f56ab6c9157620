package review

import (
	"context"
	"fmt"

	"damaloy/domain"
	"damaloy/pkg/logger"
)

// ReviewRepository contract interface
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id uint) (domain.Review, error)
	FindWithAuthor(ctx context.Context, id uint) (domain.ReviewWithAuthor, error)
	Exists(ctx context.Context, userID, productID uint) (bool, error)
	ListByProduct(ctx context.Context, productID uint) ([]domain.ReviewWithAuthor, error)
	Update(ctx context.Context, id uint, rating int, comment string) error
	Delete(ctx context.Context, id uint) error
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type ReviewService struct {
	reviewRepo ReviewRepository
	userRepo   UserRepository
}

func NewReviewService(reviewRepo ReviewRepository, userRepo UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// AddReview records a buyer's review. Only plain users may review, and
// each user gets one review per product.
func (s *ReviewService) AddReview(ctx context.Context, review *domain.Review) (domain.ReviewWithAuthor, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return domain.ReviewWithAuthor{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	author, err := s.userRepo.FindByID(ctx, review.UserID)
	if err != nil {
		return domain.ReviewWithAuthor{}, err
	}

	if author.Role != domain.RoleUser {
		return domain.ReviewWithAuthor{}, fmt.Errorf("%w: only users can leave reviews", domain.ErrForbidden)
	}

	exists, err := s.reviewRepo.Exists(ctx, review.UserID, review.ProductID)
	if err != nil {
		return domain.ReviewWithAuthor{}, err
	}
	if exists {
		return domain.ReviewWithAuthor{}, fmt.Errorf("%w: you have already reviewed this product", domain.ErrConflict)
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.Error("Failed to create review", "error", err)
		return domain.ReviewWithAuthor{}, err
	}

	return s.reviewRepo.FindWithAuthor(ctx, review.ID)
}

func (s *ReviewService) GetProductReviews(ctx context.Context, productID uint) ([]domain.ReviewWithAuthor, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	return s.reviewRepo.ListByProduct(ctx, productID)
}

// UpdateReview edits a review; only its author may.
func (s *ReviewService) UpdateReview(ctx context.Context, id, userID uint, rating int, comment string) (domain.ReviewWithAuthor, error) {
	if rating < 1 || rating > 5 {
		return domain.ReviewWithAuthor{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return domain.ReviewWithAuthor{}, err
	}

	if review.UserID != userID {
		return domain.ReviewWithAuthor{}, fmt.Errorf("%w: you can only update your own review", domain.ErrForbidden)
	}

	if err := s.reviewRepo.Update(ctx, id, rating, comment); err != nil {
		return domain.ReviewWithAuthor{}, err
	}

	return s.reviewRepo.FindWithAuthor(ctx, id)
}

// DeleteReview removes a review; only its author may.
func (s *ReviewService) DeleteReview(ctx context.Context, id, userID uint) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own review", domain.ErrForbidden)
	}

	return s.reviewRepo.Delete(ctx, id)
}
