package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "Created"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsTerminal reports whether no further status transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusShipped || s == OrderStatusCancelled
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderCode  string      `gorm:"size:255;uniqueIndex;not null" json:"order_code"`
	CustomerID uint        `gorm:"index;not null" json:"customer_id"`
	Customer   Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	Status     OrderStatus `gorm:"size:50;not null;default:Created" json:"status"`
	Items      []Item      `json:"items,omitempty"`
	Created    time.Time   `gorm:"autoCreateTime" json:"created"`
	Updated    time.Time   `gorm:"autoUpdateTime" json:"updated"`
}
