package models

import (
	"time"
)

// Image belongs to exactly one of a product or a user. Binary storage
// lives outside this service; only the stored paths are recorded here.
type Image struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	SmallImagePath string    `gorm:"size:512" json:"small_image_path"`
	LargeImagePath string    `gorm:"size:512" json:"large_image_path"`
	ProductID      *uint     `gorm:"index" json:"product_id,omitempty"`
	Product        *Product  `gorm:"foreignKey:ProductID" json:"-"`
	UserID         *uint     `gorm:"index" json:"user_id,omitempty"`
	User           *User     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwnerUserID and OwnerProductID expose the ownership graph used to
// resolve mutation rights.
func (i *Image) OwnerUserID() *uint { return i.UserID }

func (i *Image) OwnerProductID() *uint { return i.ProductID }
