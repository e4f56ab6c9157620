package domain

import "time"

const (
	SellerStatusPending  = "pending"
	SellerStatusApproved = "approved"
	SellerStatusRejected = "rejected"
)

type Seller struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	SellerEmail      string    `gorm:"column:seller_email" json:"seller_email"`
	StoreName        string    `gorm:"column:store_name" json:"store_name"`
	StoreCategory    string    `gorm:"column:store_category" json:"store_category"`
	StoreDescription string    `gorm:"column:store_description" json:"store_description"`
	Location         string    `gorm:"column:location" json:"location"`
	Phone            string    `gorm:"column:phone" json:"phone"`
	Status           string    `gorm:"column:status;default:pending" json:"status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Seller) TableName() string {
	return "sellers"
}

// SellerApplication is the admin listing row: the application plus the
// applicant's name and how many products the store carries.
type SellerApplication struct {
	Seller
	SellerName   string `json:"seller_name"`
	ProductCount int64  `json:"product_count"`
}

type SellerStats struct {
	TotalSales    float64       `json:"totalSales"`
	TotalOrders   int64         `json:"totalOrders"`
	TotalProducts int64         `json:"totalProducts"`
	RecentOrders  []RecentOrder `json:"recentOrders"`
	SalesOverTime []SalesByDay  `json:"salesOverTime"`
}

type RecentOrder struct {
	ID           uint      `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	TotalAmount  float64   `json:"total_amount"`
	OrderStatus  string    `json:"order_status"`
	CustomerName string    `json:"customer_name"`
}

type SalesByDay struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}
