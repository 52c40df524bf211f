package repositories

import (
	"context"
	"errors"

	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uint) (*models.Store, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Store, error)
	GetStores(ctx context.Context) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uint) error
	IncrementCatalogCount(ctx context.Context, tx *gorm.DB, id uint) error
}

type gormStoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &gormStoreRepository{db: db}
}

func (r *gormStoreRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *gormStoreRepository) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) GetByUserID(ctx context.Context, userID uint) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).First(&store, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) GetStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).Find(&stores).Error
	return stores, err
}

func (r *gormStoreRepository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *gormStoreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, id).Error
}

func (r *gormStoreRepository) IncrementCatalogCount(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Model(&models.Store{}).
		Where("id = ?", id).
		Update("product_catalog_count", gorm.Expr("product_catalog_count + 1")).Error
}
