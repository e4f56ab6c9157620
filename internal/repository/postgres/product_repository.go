package postgres

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.ProductDetail, error) {
	var product domain.ProductDetail

	err := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Select("products.*, sellers.store_name, sellers.location, sellers.seller_email, sellers.phone").
		Joins("JOIN sellers ON products.seller_id = sellers.id").
		Where("products.id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductDetail{}, fmt.Errorf("%w: product", domain.ErrNotFound)
		}
		return domain.ProductDetail{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindRow(ctx context.Context, id uint) (domain.Product, error) {
	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("%w: product", domain.ErrNotFound)
		}
		return domain.Product{}, err
	}

	return product, nil
}

// FindAll applies the catalog filters as chained parameterized predicates
// and returns one page plus the unpaged row count.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductSummary, int64, error) {
	base := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Joins("JOIN sellers ON products.seller_id = sellers.id")

	// case-insensitive match on any database
	if filter.Search != "" {
		base = base.Where("LOWER(products.name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	if filter.Category != "" {
		base = base.Where("sellers.store_category = ?", filter.Category)
	}

	if filter.SellerID != 0 {
		base = base.Where("products.seller_id = ?", filter.SellerID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit

	var products []domain.ProductSummary
	err := base.Session(&gorm.Session{}).
		Select(`products.*, sellers.store_name, sellers.store_category, sellers.location, sellers.seller_email,
			(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.product_id = products.id) AS average_rating,
			(SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id) AS review_count`).
		Order("products.created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}

	return products, total, nil
}

func (r *ProductRepository) FindTop(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	var products []domain.TopProduct

	err := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Select("products.*, COALESCE(SUM(order_items.quantity), 0) AS total_sold").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Group("products.id").
		Order("total_sold DESC, products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find top products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	updateData := map[string]interface{}{
		"name":        product.Name,
		"image":       product.Image,
		"price":       product.Price,
		"unit":        product.Unit,
		"description": product.Description,
		"quantity":    product.Quantity,
		"discount":    product.Discount,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product", domain.ErrNotFound)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product", domain.ErrNotFound)
	}

	return nil
}
