package models

import (
	"time"
)

type Store struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:255;not null" json:"name"`
	Description         string    `gorm:"type:text" json:"description"`
	Country             string    `gorm:"size:100" json:"country"`
	UserID              uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User                User      `gorm:"foreignKey:UserID" json:"-"`
	ProductCatalogCount int       `gorm:"not null;default:0" json:"product_catalog_count"`
	Products            []Product `json:"products,omitempty"`
	Stocks              []Stock   `json:"stocks,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
