package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func UserFaker() *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	return &models.User{
		Name:     faker.Name(),
		Email:    faker.Email(),
		Password: string(hashed),
	}
}

func CustomerFaker(user *models.User) *models.Customer {
	return &models.Customer{
		Name:   user.Name,
		UserID: user.ID,
	}
}

func StoreFaker(user *models.User) *models.Store {
	return &models.Store{
		Name:        faker.Word() + " Store",
		Description: faker.Sentence(),
		Country:     "US",
		UserID:      user.ID,
	}
}

func CategoryFaker() *models.ProductCategory {
	return &models.ProductCategory{
		CategoryName: faker.Word(),
	}
}

func ProductFaker(store *models.Store, category *models.ProductCategory) *models.Product {
	return &models.Product{
		Name:              faker.Name(),
		Description:       faker.Paragraph(),
		Price:             decimal.NewFromInt(int64(rand.Intn(9900) + 100)).Div(decimal.NewFromInt(100)),
		ProductCategoryID: category.ID,
		StoreID:           store.ID,
	}
}

func StockFaker(product *models.Product) *models.Stock {
	return &models.Stock{
		ProductID:         product.ID,
		StoreID:           product.StoreID,
		AvailableQuantity: rand.Intn(50) + 1,
	}
}
