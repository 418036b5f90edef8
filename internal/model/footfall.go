package model

import (
	"time"
)

// Footfall is an append-only daily visitor count for a shop
type Footfall struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ShopID       uint      `json:"shop_id" gorm:"index;not null"`
	RecordDate   time.Time `json:"record_date" gorm:"type:date;not null;index"`
	VisitorCount int       `json:"visitor_count" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the original singular table name
func (Footfall) TableName() string {
	return "footfall"
}
