package model

import (
	"time"
)

// Employee represents an employee account. Accounts are created by a mall
// administrator, never self-registered. ShopID is nil for mall administrators.
type Employee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	ShopID    *uint     `json:"shop_id,omitempty" gorm:"index"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
