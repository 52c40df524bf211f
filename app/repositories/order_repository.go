package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByIDWithItems(ctx context.Context, id uint) (*models.Order, error)
	// GetByIDForUpdate row-locks the order inside tx so that item
	// additions and status changes on the same order serialize.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	GetByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, status models.OrderStatus) error
	Touch(ctx context.Context, tx *gorm.DB, orderID uint) error
	Delete(ctx context.Context, tx *gorm.DB, orderID uint) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByIDWithItems(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, status models.OrderStatus) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"status":  status,
		"updated": time.Now(),
	}).Error
}

func (r *gormOrderRepository) Touch(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("updated", time.Now()).Error
}

func (r *gormOrderRepository) Delete(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return tx.WithContext(ctx).Delete(&models.Order{}, orderID).Error
}
