package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrStoreNotFound    = errors.New("store not found")
	ErrCategoryNotFound = errors.New("product category not found")
	ErrInvalidPrice     = errors.New("price must not be negative")
)

// CatalogService is the read path for products feeding order pricing,
// plus ordinary product CRUD.
type CatalogService struct {
	db           *gorm.DB
	productRepo  repositories.ProductRepositoryImpl
	storeRepo    repositories.StoreRepository
	categoryRepo repositories.CategoryRepository
	log          *zap.SugaredLogger
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	storeRepo repositories.StoreRepository,
	categoryRepo repositories.CategoryRepository,
	log *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		db:           db,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		log:          log,
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetPrice returns the current unit price used to compute authoritative
// item totals.
func (s *CatalogService) GetPrice(ctx context.Context, productID uint) (decimal.Decimal, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return product.Price, nil
}

// CreateProduct validates the store and category references and bumps
// the store's catalog counter together with the insert.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Price.IsNegative() {
		return ErrInvalidPrice
	}

	store, err := s.storeRepo.GetByID(ctx, product.StoreID)
	if err != nil {
		return fmt.Errorf("failed to get store: %w", err)
	}
	if store == nil {
		return ErrStoreNotFound
	}

	category, err := s.categoryRepo.GetByID(ctx, product.ProductCategoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if err := s.storeRepo.IncrementCatalogCount(ctx, tx, store.ID); err != nil {
			return fmt.Errorf("failed to update store catalog count: %w", err)
		}
		return nil
	})
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.Price.IsNegative() {
		return ErrInvalidPrice
	}
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Update(ctx, product)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetProducts(ctx)
}

func (s *CatalogService) ListProductsByStore(ctx context.Context, storeID uint) ([]models.Product, error) {
	return s.productRepo.GetByStore(ctx, storeID)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	return s.productRepo.GetByCategory(ctx, categoryID)
}
