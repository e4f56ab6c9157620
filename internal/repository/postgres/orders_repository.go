package postgres

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// PlaceOrder persists an order and its items, decrements stock, clears
// the buyer's cart and saves the shipping address, all in one
// transaction. Stock is decremented conditionally: a line whose product
// no longer covers the requested quantity rolls the whole order back
// with ErrInsufficientStock.
func (r *OrdersRepository) PlaceOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID

			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			result := tx.Model(&domain.Product{}).
				Where("id = ?", items[i].ProductID).
				Where("quantity >= ?", items[i].Quantity).
				Update("quantity", gorm.Expr("quantity - ?", items[i].Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, items[i].ProductID)
			}
		}

		if err := tx.Where("user_id = ?", order.UserID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		err := tx.Model(&domain.User{}).
			Where("id = ?", order.UserID).
			Update("address", order.ShippingAddress).Error
		if err != nil {
			return fmt.Errorf("failed to save shipping address: %w", err)
		}

		return nil
	})
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, fmt.Errorf("%w: order", domain.ErrNotFound)
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uint, status string) (domain.Order, error) {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("order_status", status)
	if result.Error != nil {
		return domain.Order{}, result.Error
	}

	if result.RowsAffected == 0 {
		return domain.Order{}, fmt.Errorf("%w: order", domain.ErrNotFound)
	}

	return r.FindByID(ctx, id)
}

// ListByUser returns the user's orders newest first, each with its item
// snapshots joined to current product names and images.
func (r *OrdersRepository) ListByUser(ctx context.Context, userID uint) ([]domain.OrderView, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, domain.OrderView{
			ID:              o.ID,
			UserID:          o.UserID,
			TotalAmount:     o.TotalAmount,
			PaymentMethod:   o.PaymentMethod,
			PaymentStatus:   o.PaymentStatus,
			OrderStatus:     o.OrderStatus,
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       o.CreatedAt,
			Items:           []domain.OrderItemView{},
		})
	}

	return r.attachItems(ctx, views)
}

// ListAll is the admin view: every order with buyer name and email.
func (r *OrdersRepository) ListAll(ctx context.Context) ([]domain.OrderView, error) {
	type orderWithUser struct {
		domain.Order
		UserName  string
		UserEmail string
	}

	var orders []orderWithUser
	err := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Select("orders.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON orders.user_id = users.id").
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, domain.OrderView{
			ID:              o.ID,
			UserID:          o.UserID,
			UserName:        o.UserName,
			UserEmail:       o.UserEmail,
			TotalAmount:     o.TotalAmount,
			PaymentMethod:   o.PaymentMethod,
			PaymentStatus:   o.PaymentStatus,
			OrderStatus:     o.OrderStatus,
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       o.CreatedAt,
			Items:           []domain.OrderItemView{},
		})
	}

	return r.attachItems(ctx, views)
}

func (r *OrdersRepository) attachItems(ctx context.Context, views []domain.OrderView) ([]domain.OrderView, error) {
	if len(views) == 0 {
		return views, nil
	}

	orderIDs := make([]uint, 0, len(views))
	index := make(map[uint]int, len(views))
	for i, v := range views {
		orderIDs = append(orderIDs, v.ID)
		index[v.ID] = i
	}

	type itemRow struct {
		OrderID      uint
		ProductID    uint
		Quantity     int
		Price        float64
		ProductName  string
		ProductImage string
	}

	var rows []itemRow
	err := r.DB.WithContext(ctx).Model(&domain.OrderItem{}).
		Select(`order_items.order_id, order_items.product_id, order_items.quantity, order_items.price,
			products.name AS product_name, products.image AS product_image`).
		Joins("LEFT JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id IN ?", orderIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			continue
		}
		views[i].Items = append(views[i].Items, domain.OrderItemView{
			ProductID:    row.ProductID,
			Quantity:     row.Quantity,
			Price:        row.Price,
			ProductName:  row.ProductName,
			ProductImage: row.ProductImage,
		})
	}

	return views, nil
}
