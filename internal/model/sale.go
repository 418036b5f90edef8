package model

import (
	"time"
)

// Sale records a day's sales of one product. The referenced product must
// belong to the same shop; this is checked at write time, not by the schema.
type Sale struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"product_id" gorm:"index;not null"`
	ShopID       uint      `json:"shop_id" gorm:"index;not null"`
	SaleDate     time.Time `json:"sale_date" gorm:"type:date;not null;index"`
	QuantitySold int       `json:"quantity_sold" gorm:"not null"`
	TotalAmount  float64   `json:"total_amount" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
