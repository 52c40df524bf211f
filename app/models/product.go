package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Description       string          `gorm:"type:text" json:"description"`
	Price             decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	ProductCategoryID uint            `gorm:"index;not null" json:"product_category_id"`
	ProductCategory   ProductCategory `gorm:"foreignKey:ProductCategoryID" json:"-"`
	StoreID           uint            `gorm:"index;not null" json:"store_id"`
	Store             Store           `gorm:"foreignKey:StoreID" json:"-"`
	SoldAmount        int             `gorm:"not null;default:0" json:"sold_amount"`
	Items             []Item          `json:"-"`
	Images            []Image         `json:"images,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
