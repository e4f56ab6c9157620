package domain

import "time"

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"column:product_id;not null;index:idx_cart_user_product,unique" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CartItem) TableName() string {
	return "carts"
}

// CartLine is a cart row joined with the product's live price and the
// store name. Checkout totals are computed from Price, not a cached
// cart price.
type CartLine struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	SellerID  uint      `json:"seller_id"`
	StoreName string    `json:"store_name"`
	CreatedAt time.Time `json:"created_at"`
}
