package seeders

import (
	"github.com/shopapp-dev/shopapp/app/db/fakers"
	"gorm.io/gorm"
)

const (
	seedCategories        = 4
	seedProductsPerSeller = 5
)

// DBSeed builds a small demo catalog: one seller with a store, a few
// categories, products and an initial stock row per product.
func DBSeed(db *gorm.DB) error {
	user := fakers.UserFaker()
	if err := db.Create(user).Error; err != nil {
		return err
	}

	customer := fakers.CustomerFaker(user)
	if err := db.Create(customer).Error; err != nil {
		return err
	}

	store := fakers.StoreFaker(user)
	if err := db.Create(store).Error; err != nil {
		return err
	}

	for i := 0; i < seedCategories; i++ {
		category := fakers.CategoryFaker()
		if err := db.Create(category).Error; err != nil {
			return err
		}

		for j := 0; j < seedProductsPerSeller; j++ {
			product := fakers.ProductFaker(store, category)
			if err := db.Create(product).Error; err != nil {
				return err
			}
			if err := db.Create(fakers.StockFaker(product)).Error; err != nil {
				return err
			}
		}
	}

	return db.Model(store).Update("product_catalog_count", seedCategories*seedProductsPerSeller).Error
}
