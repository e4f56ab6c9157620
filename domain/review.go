package domain

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"column:product_id;not null;index:idx_review_product_user,unique" json:"product_id"`
	UserID    uint      `gorm:"column:user_id;not null;index:idx_review_product_user,unique" json:"user_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewWithAuthor struct {
	Review
	UserName  string `json:"user_name"`
	UserPhoto string `json:"user_photo"`
}
