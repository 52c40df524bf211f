package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// InventoryService is the only component allowed to mutate stock
// quantities. Every mutation is a single atomic conditional update on
// the (product, store) row, so concurrent reservations against the
// same row serialize in the database and available quantity can never
// go negative.
type InventoryService struct {
	db        *gorm.DB
	stockRepo repositories.StockRepository
	log       *zap.SugaredLogger
}

const (
	reserveMaxAttempts = 3
	reserveRetryDelay  = 50 * time.Millisecond
)

func NewInventoryService(db *gorm.DB, stockRepo repositories.StockRepository, log *zap.SugaredLogger) *InventoryService {
	return &InventoryService{
		db:        db,
		stockRepo: stockRepo,
		log:       log,
	}
}

// Reserve takes qty units from the stock row of (productID, storeID).
// Contention errors from the database are retried a bounded number of
// times; a reservation that still cannot complete surfaces
// repositories.ErrStockContention for the caller to retry with backoff.
func (s *InventoryService) Reserve(ctx context.Context, productID, storeID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	var err error
	for attempt := 1; attempt <= reserveMaxAttempts; attempt++ {
		err = s.stockRepo.Reserve(ctx, s.db, productID, storeID, qty)
		if !errors.Is(err, repositories.ErrStockContention) {
			return err
		}
		if attempt == reserveMaxAttempts {
			break
		}

		s.log.Warnw("stock reservation hit contention, retrying",
			"product_id", productID, "store_id", storeID, "qty", qty, "attempt", attempt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * reserveRetryDelay):
		}
	}
	return err
}

// ReserveTx is Reserve running inside the caller's transaction. It does
// not retry: a contention failure aborts the surrounding transaction
// and the whole operation is retried by the client.
func (s *InventoryService) ReserveTx(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return s.stockRepo.Reserve(ctx, tx, productID, storeID, qty)
}

// Release returns qty units to the stock row. Quantity checks never
// fail here; only a missing row is an error.
func (s *InventoryService) Release(ctx context.Context, productID, storeID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return s.stockRepo.Release(ctx, s.db, productID, storeID, qty)
}

// ReleaseTx is Release inside the caller's transaction.
func (s *InventoryService) ReleaseTx(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return s.stockRepo.Release(ctx, tx, productID, storeID, qty)
}

// Restock is the administrative increment. It creates the stock row
// when a product is stocked at a store for the first time.
func (s *InventoryService) Restock(ctx context.Context, productID, storeID uint, delta int) (*models.Stock, error) {
	if delta <= 0 {
		return nil, ErrInvalidQuantity
	}

	stock, err := s.stockRepo.Restock(ctx, productID, storeID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to restock product %d at store %d: %w", productID, storeID, err)
	}

	s.log.Infow("stock replenished",
		"product_id", productID, "store_id", storeID, "delta", delta, "available", stock.AvailableQuantity)
	return stock, nil
}

func (s *InventoryService) GetStock(ctx context.Context, productID, storeID uint) (*models.Stock, error) {
	return s.stockRepo.GetByProductAndStore(ctx, productID, storeID)
}

func (s *InventoryService) GetStoreStocks(ctx context.Context, storeID uint) ([]models.Stock, error) {
	return s.stockRepo.GetByStore(ctx, storeID)
}
