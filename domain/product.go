package domain

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SellerID    uint      `gorm:"column:seller_id;not null" json:"seller_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Image       string    `gorm:"column:image" json:"image"`
	Price       float64   `gorm:"column:price;type:numeric" json:"price"`
	Unit        string    `gorm:"column:unit" json:"unit"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Quantity    int       `gorm:"column:quantity;default:0" json:"quantity"`
	Discount    float64   `gorm:"column:discount;type:numeric;default:0" json:"discount"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductSummary is a catalog listing row: the product plus store fields
// and review aggregates.
type ProductSummary struct {
	Product
	StoreName     string  `json:"store_name"`
	StoreCategory string  `json:"store_category"`
	Location      string  `json:"location"`
	SellerEmail   string  `json:"seller_email"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// ProductDetail is the single-product view with store contact fields.
type ProductDetail struct {
	Product
	StoreName   string `json:"store_name"`
	Location    string `json:"location"`
	SellerEmail string `json:"seller_email"`
	Phone       string `json:"phone"`
}

// TopProduct carries the units-sold aggregate used on the landing page.
type TopProduct struct {
	Product
	TotalSold int64 `json:"total_sold"`
}

type ProductFilter struct {
	Search   string
	Category string
	SellerID uint
	Page     int
	Limit    int
}

type PriceHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"column:product_id;not null;index" json:"product_id"`
	Price     float64   `gorm:"column:price;type:numeric" json:"price"`
	ChangedAt time.Time `gorm:"column:changed_at" json:"changed_at"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
