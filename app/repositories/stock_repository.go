package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrStockNotFound     = errors.New("stock record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockContention   = errors.New("stock row contention, retry")
)

// MySQL error numbers for lock wait timeout and deadlock. Both mean the
// conditional update lost a race and may be retried by the caller.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

type StockRepository interface {
	GetByProductAndStore(ctx context.Context, productID, storeID uint) (*models.Stock, error)
	GetByStore(ctx context.Context, storeID uint) ([]models.Stock, error)
	// Reserve decrements available quantity by qty in a single
	// conditional update; it never leaves a window between the
	// availability check and the decrement.
	Reserve(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error
	// Release returns qty units to the stock row. It fails only when
	// the row does not exist.
	Release(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error
	// Restock adds delta units, creating the row when the product is
	// stocked at the store for the first time.
	Restock(ctx context.Context, productID, storeID uint, delta int) (*models.Stock, error)
}

type gormStockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &gormStockRepository{db: db}
}

func (r *gormStockRepository) GetByProductAndStore(ctx context.Context, productID, storeID uint) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	return &stock, nil
}

func (r *gormStockRepository) GetByStore(ctx context.Context, storeID uint) ([]models.Stock, error) {
	var stocks []models.Stock
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("product_id").
		Find(&stocks).Error
	return stocks, err
}

func (r *gormStockRepository) Reserve(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error {
	res := tx.WithContext(ctx).Model(&models.Stock{}).
		Where("product_id = ? AND store_id = ? AND available_quantity >= ?", productID, storeID, qty).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity - ?", qty),
			"updated":            time.Now(),
		})
	if res.Error != nil {
		return translateStockError(res.Error)
	}
	if res.RowsAffected == 0 {
		// The update matched nothing: either the row does not exist or
		// the quantity check failed.
		var count int64
		if err := tx.WithContext(ctx).Model(&models.Stock{}).
			Where("product_id = ? AND store_id = ?", productID, storeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrStockNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *gormStockRepository) Release(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error {
	res := tx.WithContext(ctx).Model(&models.Stock{}).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", qty),
			"updated":            time.Now(),
		})
	if res.Error != nil {
		return translateStockError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStockNotFound
	}
	return nil
}

func (r *gormStockRepository) Restock(ctx context.Context, productID, storeID uint, delta int) (*models.Stock, error) {
	// Upsert against the unique (product_id, store_id) index, so two
	// concurrent restocks of a new product cannot race on the insert.
	stock := &models.Stock{
		ProductID:         productID,
		StoreID:           storeID,
		AvailableQuantity: delta,
		Updated:           time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", delta),
			"updated":            time.Now(),
		}),
	}).Create(stock).Error
	if err != nil {
		return nil, translateStockError(err)
	}
	return r.GetByProductAndStore(ctx, productID, storeID)
}

func translateStockError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == mysqlErrLockWaitTimeout || mysqlErr.Number == mysqlErrDeadlock {
			return ErrStockContention
		}
	}
	return err
}
