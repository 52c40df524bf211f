package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a line item owned by an Order. PriceTotal is a snapshot of
// product price x quantity taken when the item was created, not a live
// reference to the product's current price.
type Item struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"index;not null" json:"order_id"`
	Order      Order           `gorm:"foreignKey:OrderID" json:"-"`
	ProductID  uint            `gorm:"index;not null" json:"product_id"`
	Product    Product         `gorm:"foreignKey:ProductID" json:"-"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	PriceTotal decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price_total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
