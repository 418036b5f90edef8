package model

import (
	"time"
)

// Shop represents a rentable unit in the mall
type Shop struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"shop_name" gorm:"type:varchar(255);not null"`
	Location   string    `json:"location" gorm:"type:varchar(255)"`
	SizeSqft   float64   `json:"size_sqft"`
	RentalRate float64   `json:"rental_rate"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ShopWithProductCount is a Shop annotated with a live product count,
// used by the mall-admin shop listing
type ShopWithProductCount struct {
	Shop
	ProductCount int64 `json:"product_count"`
}
