package repositories

import (
	"context"
	"errors"

	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByStore(ctx context.Context, storeID uint) ([]models.Product, error)
	GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	Create(ctx context.Context, tx *gorm.DB, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	IncrementSoldAmount(ctx context.Context, tx *gorm.DB, id uint, qty int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).Model(&models.Product{}).Preload("Images").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Images").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByStore(ctx context.Context, storeID uint) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Images").
		Where("store_id = ?", storeID).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Images").
		Where("product_category_id = ?", categoryID).
		Find(&products).Error
	return products, err
}

func (p *productRepository) Create(ctx context.Context, tx *gorm.DB, product *models.Product) error {
	return tx.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (p *productRepository) IncrementSoldAmount(ctx context.Context, tx *gorm.DB, id uint, qty int) error {
	return tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("sold_amount", gorm.Expr("sold_amount + ?", qty)).Error
}
