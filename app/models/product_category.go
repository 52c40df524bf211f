package models

import (
	"time"
)

type ProductCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"size:255;not null;uniqueIndex" json:"category_name"`
	Products     []Product `json:"products,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
