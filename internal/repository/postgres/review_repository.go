package postgres

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}

	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (domain.Review, error) {
	var review domain.Review

	err := r.DB.WithContext(ctx).First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, fmt.Errorf("%w: review", domain.ErrNotFound)
		}
		return domain.Review{}, err
	}

	return review, nil
}

func (r *ReviewRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64

	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Where("user_id = ?", userID).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ReviewRepository) FindWithAuthor(ctx context.Context, id uint) (domain.ReviewWithAuthor, error) {
	var review domain.ReviewWithAuthor

	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Select("reviews.*, users.name AS user_name, users.photo_url AS user_photo").
		Joins("JOIN users ON reviews.user_id = users.id").
		Where("reviews.id = ?", id).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReviewWithAuthor{}, fmt.Errorf("%w: review", domain.ErrNotFound)
		}
		return domain.ReviewWithAuthor{}, err
	}

	return review, nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uint) ([]domain.ReviewWithAuthor, error) {
	var reviews []domain.ReviewWithAuthor

	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Select("reviews.*, users.name AS user_name, users.photo_url AS user_photo").
		Joins("JOIN users ON reviews.user_id = users.id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id uint, rating int, comment string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "comment": comment})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: review", domain.ErrNotFound)
	}

	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Review{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: review", domain.ErrNotFound)
	}

	return nil
}
