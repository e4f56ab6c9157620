package postgres

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"

	"gorm.io/gorm"
)

type SellerRepository struct {
	DB *gorm.DB
}

func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{
		DB: db,
	}
}

func (r *SellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	if err := r.DB.WithContext(ctx).Create(seller).Error; err != nil {
		return err
	}

	return nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id uint) (domain.Seller, error) {
	var seller domain.Seller

	err := r.DB.WithContext(ctx).First(&seller, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Seller{}, fmt.Errorf("%w: seller", domain.ErrNotFound)
		}
		return domain.Seller{}, err
	}

	return seller, nil
}

func (r *SellerRepository) FindByUserID(ctx context.Context, userID uint) (domain.Seller, error) {
	var seller domain.Seller

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Seller{}, fmt.Errorf("%w: seller", domain.ErrNotFound)
		}
		return domain.Seller{}, err
	}

	return seller, nil
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (domain.Seller, error) {
	var seller domain.Seller

	err := r.DB.WithContext(ctx).Where("seller_email = ?", email).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Seller{}, fmt.Errorf("%w: seller", domain.ErrNotFound)
		}
		return domain.Seller{}, err
	}

	return seller, nil
}

// FindAll returns applications with the applicant's name and the store's
// product count. Filters are optional: status wins over excludeStatus.
func (r *SellerRepository) FindAll(ctx context.Context, status, excludeStatus string) ([]domain.SellerApplication, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Seller{}).
		Select("sellers.*, users.name AS seller_name, COUNT(products.id) AS product_count").
		Joins("JOIN users ON sellers.user_id = users.id").
		Joins("LEFT JOIN products ON products.seller_id = sellers.id")

	if status != "" {
		query = query.Where("sellers.status = ?", status)
	} else if excludeStatus != "" {
		query = query.Where("sellers.status <> ?", excludeStatus)
	}

	var applications []domain.SellerApplication
	err := query.Group("sellers.id, users.name").
		Order("sellers.created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *SellerRepository) UpdateStatus(ctx context.Context, id uint, status string) (domain.Seller, error) {
	result := r.DB.WithContext(ctx).Model(&domain.Seller{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return domain.Seller{}, result.Error
	}

	if result.RowsAffected == 0 {
		return domain.Seller{}, fmt.Errorf("%w: seller", domain.ErrNotFound)
	}

	return r.FindByID(ctx, id)
}

func (r *SellerRepository) Delete(ctx context.Context, id uint) (domain.Seller, error) {
	seller, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Seller{}, err
	}

	if err := r.DB.WithContext(ctx).Delete(&domain.Seller{}, id).Error; err != nil {
		return domain.Seller{}, err
	}

	return seller, nil
}
