package model

import (
	"time"
)

// Product represents an item in a shop's catalog. A product is owned by
// exactly one shop.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ShopID        uint      `json:"shop_id" gorm:"index;not null"`
	Name          string    `json:"product_name" gorm:"type:varchar(255);not null"`
	Category      string    `json:"category" gorm:"type:varchar(100)"`
	Price         float64   `json:"price" gorm:"not null"`
	StockQuantity int       `json:"stock_quantity" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
