package repositories

import (
	"context"
	"errors"

	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *models.Item) error
	GetByOrderAndID(ctx context.Context, tx *gorm.DB, orderID, itemID uint) (*models.Item, error)
	ListByOrder(ctx context.Context, orderID uint) ([]models.Item, error)
	ListByOrderTx(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.Item, error)
	Update(ctx context.Context, tx *gorm.DB, item *models.Item) error
	Delete(ctx context.Context, tx *gorm.DB, itemID uint) error
	DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID uint) error
}

type gormItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{db: db}
}

func (r *gormItemRepository) Create(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *gormItemRepository) GetByOrderAndID(ctx context.Context, tx *gorm.DB, orderID, itemID uint) (*models.Item, error) {
	var item models.Item
	err := tx.WithContext(ctx).
		Where("id = ? AND order_id = ?", itemID, orderID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormItemRepository) ListByOrder(ctx context.Context, orderID uint) ([]models.Item, error) {
	return r.ListByOrderTx(ctx, r.db, orderID)
}

func (r *gormItemRepository) ListByOrderTx(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.Item, error) {
	var items []models.Item
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *gormItemRepository) Update(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	return tx.WithContext(ctx).Save(item).Error
}

func (r *gormItemRepository) Delete(ctx context.Context, tx *gorm.DB, itemID uint) error {
	return tx.WithContext(ctx).Delete(&models.Item{}, itemID).Error
}

func (r *gormItemRepository) DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return tx.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.Item{}).Error
}
