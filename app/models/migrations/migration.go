package migrations

import (
	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Store{}, &models.ProductCategory{}, &models.Product{}, &models.Stock{}, &models.Order{}, &models.Item{}, &models.Image{})
}
