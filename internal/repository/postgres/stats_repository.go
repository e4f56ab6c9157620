package postgres

import (
	"context"
	"fmt"

	"damaloy/domain"

	"gorm.io/gorm"
)

// StatsRepository serves the read-only aggregates behind the admin and
// seller dashboards.
type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{
		DB: db,
	}
}

func (r *StatsRepository) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	var stats domain.AdminStats

	db := r.DB.WithContext(ctx)

	err := db.Model(&domain.User{}).Where("role = ?", domain.RoleUser).Count(&stats.TotalUsers).Error
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("failed to count users: %w", err)
	}

	if err := db.Model(&domain.Seller{}).Count(&stats.TotalSellers).Error; err != nil {
		return domain.AdminStats{}, fmt.Errorf("failed to count sellers: %w", err)
	}

	if err := db.Model(&domain.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return domain.AdminStats{}, fmt.Errorf("failed to count products: %w", err)
	}

	err = db.Model(&domain.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}

func (r *StatsRepository) SellerStats(ctx context.Context, sellerID uint) (domain.SellerStats, error) {
	var stats domain.SellerStats

	db := r.DB.WithContext(ctx)

	err := db.Model(&domain.OrderItem{}).
		Select("COALESCE(SUM(order_items.price * order_items.quantity), 0)").
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("products.seller_id = ?", sellerID).
		Scan(&stats.TotalSales).Error
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("failed to sum seller sales: %w", err)
	}

	err = db.Model(&domain.OrderItem{}).
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("products.seller_id = ?", sellerID).
		Distinct("order_items.order_id").
		Count(&stats.TotalOrders).Error
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("failed to count seller orders: %w", err)
	}

	err = db.Model(&domain.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&stats.TotalProducts).Error
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("failed to count seller products: %w", err)
	}

	err = db.Model(&domain.Order{}).
		Select("DISTINCT orders.id, orders.created_at, orders.total_amount, orders.order_status, users.name AS customer_name").
		Joins("JOIN order_items ON orders.id = order_items.order_id").
		Joins("JOIN products ON order_items.product_id = products.id").
		Joins("JOIN users ON orders.user_id = users.id").
		Where("products.seller_id = ?", sellerID).
		Order("orders.created_at DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("failed to list recent orders: %w", err)
	}

	err = db.Model(&domain.Order{}).
		Select("DATE(orders.created_at) AS date, SUM(order_items.price * order_items.quantity) AS sales").
		Joins("JOIN order_items ON orders.id = order_items.order_id").
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("products.seller_id = ?", sellerID).
		Group("DATE(orders.created_at)").
		Order("DATE(orders.created_at) ASC").
		Limit(7).
		Find(&stats.SalesOverTime).Error
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("failed to aggregate sales over time: %w", err)
	}

	if stats.RecentOrders == nil {
		stats.RecentOrders = []domain.RecentOrder{}
	}
	if stats.SalesOverTime == nil {
		stats.SalesOverTime = []domain.SalesByDay{}
	}

	return stats, nil
}
