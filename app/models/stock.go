package models

import (
	"time"
)

// Stock tracks the available quantity of a product at a single store.
// A product has at most one stock row per store and AvailableQuantity
// must never go below zero.
type Stock struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uint      `gorm:"not null;uniqueIndex:idx_stocks_product_store" json:"product_id"`
	Product           Product   `gorm:"foreignKey:ProductID" json:"-"`
	StoreID           uint      `gorm:"not null;uniqueIndex:idx_stocks_product_store" json:"store_id"`
	Store             Store     `gorm:"foreignKey:StoreID" json:"-"`
	AvailableQuantity int       `gorm:"not null;default:0" json:"available_quantity"`
	Updated           time.Time `json:"updated"`
}
