package domain

import "time"

const (
	PaymentMethodStripe = "stripe"
	PaymentMethodCOD    = "cod"

	PaymentStatusPending = "pending"

	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatusTransitions is the admin-triggered lifecycle:
// pending -> confirmed -> delivered, cancelled from pending or confirmed.
var OrderStatusTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusDelivered, OrderStatusCancelled},
}

type Order struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UserID                uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	TotalAmount           float64   `gorm:"column:total_amount;type:numeric" json:"total_amount"`
	PaymentMethod         string    `gorm:"column:payment_method" json:"payment_method"`
	PaymentStatus         string    `gorm:"column:payment_status;default:pending" json:"payment_status"`
	OrderStatus           string    `gorm:"column:order_status;default:pending" json:"order_status"`
	ShippingAddress       string    `gorm:"column:shipping_address" json:"shipping_address"`
	StripePaymentIntentID string    `gorm:"column:stripe_payment_intent_id" json:"stripe_payment_intent_id,omitempty"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemView is an order item joined with the product's current name
// and image for display. Price and Quantity stay the purchase-time snapshot.
type OrderItemView struct {
	ProductID    uint    `json:"product_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
}

// OrderView is an order with its items, plus buyer identity on admin
// listings.
type OrderView struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	UserName        string          `json:"user_name,omitempty"`
	UserEmail       string          `json:"user_email,omitempty"`
	TotalAmount     float64         `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	OrderStatus     string          `json:"order_status"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItemView `json:"items"`
}
