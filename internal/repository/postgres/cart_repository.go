package postgres

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}

	return nil
}

func (r *CartRepository) FindLine(ctx context.Context, userID, productID uint) (domain.CartItem, error) {
	var item domain.CartItem

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("product_id = ?", productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartItem{}, fmt.Errorf("%w: cart item", domain.ErrNotFound)
		}
		return domain.CartItem{}, err
	}

	return item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) (domain.CartItem, error) {
	result := r.DB.WithContext(ctx).Model(&domain.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return domain.CartItem{}, result.Error
	}

	if result.RowsAffected == 0 {
		return domain.CartItem{}, fmt.Errorf("%w: cart item", domain.ErrNotFound)
	}

	var item domain.CartItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}

// ListByUser returns the user's cart joined with the products' live
// price and the store name.
func (r *CartRepository) ListByUser(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	var lines []domain.CartLine

	err := r.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Select(`carts.id, carts.user_id, carts.product_id, carts.quantity, carts.created_at,
			products.name, products.image, products.price, products.unit, products.seller_id,
			sellers.store_name`).
		Joins("LEFT JOIN products ON carts.product_id = products.id").
		Joins("LEFT JOIN sellers ON products.seller_id = sellers.id").
		Where("carts.user_id = ?", userID).
		Order("carts.created_at DESC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *CartRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.CartItem{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cart item", domain.ErrNotFound)
	}

	return nil
}

func (r *CartRepository) ClearByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
}
