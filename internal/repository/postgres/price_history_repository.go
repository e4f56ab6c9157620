package postgres

import (
	"context"
	"errors"
	"time"

	"damaloy/domain"

	"gorm.io/gorm"
)

type PriceHistoryRepository struct {
	DB *gorm.DB
}

func NewPriceHistoryRepository(db *gorm.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{
		DB: db,
	}
}

func (r *PriceHistoryRepository) Append(ctx context.Context, productID uint, price float64) error {
	entry := domain.PriceHistory{
		ProductID: productID,
		Price:     price,
		ChangedAt: time.Now(),
	}

	return r.DB.WithContext(ctx).Create(&entry).Error
}

func (r *PriceHistoryRepository) ListByProduct(ctx context.Context, productID uint) ([]domain.PriceHistory, error) {
	var history []domain.PriceHistory

	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("changed_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}

	return history, nil
}

// Latest returns the most recent recorded price, or ok=false when the
// product has no history yet.
func (r *PriceHistoryRepository) Latest(ctx context.Context, productID uint) (float64, bool, error) {
	var entry domain.PriceHistory

	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("changed_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return entry.Price, true, nil
}
