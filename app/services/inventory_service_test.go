package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newInventoryService(t *testing.T, stockRepo repositories.StockRepository) *services.InventoryService {
	t.Helper()
	return services.NewInventoryService(newTestDB(t), stockRepo, zap.NewNop().Sugar())
}

func TestReserveDecrementsStock(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(1, 1, 10)
	svc := newInventoryService(t, stocks)

	err := svc.Reserve(context.Background(), 1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, stocks.available(1, 1))
}

func TestReserveInsufficientStockLeavesQuantityUnchanged(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(1, 1, 2)
	svc := newInventoryService(t, stocks)

	err := svc.Reserve(context.Background(), 1, 1, 5)
	require.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Equal(t, 2, stocks.available(1, 1))
}

func TestReserveUnknownStockRow(t *testing.T) {
	svc := newInventoryService(t, newMockStockRepo())

	err := svc.Reserve(context.Background(), 99, 1, 1)
	assert.ErrorIs(t, err, repositories.ErrStockNotFound)
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(1, 1, 10)
	svc := newInventoryService(t, stocks)

	assert.ErrorIs(t, svc.Reserve(context.Background(), 1, 1, 0), services.ErrInvalidQuantity)
	assert.ErrorIs(t, svc.Reserve(context.Background(), 1, 1, -4), services.ErrInvalidQuantity)
	assert.Equal(t, 10, stocks.available(1, 1))
}

func TestConcurrentReserveOfLastUnit(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(1, 1, 1)
	svc := newInventoryService(t, stocks)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Reserve(context.Background(), 1, 1, 1)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, repositories.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, stocks.available(1, 1))
}

func TestConcurrentReserveConservesStock(t *testing.T) {
	const (
		initial = 50
		workers = 20
		qty     = 3
	)
	stocks := newMockStockRepo()
	stocks.put(1, 1, initial)
	svc := newInventoryService(t, stocks)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Reserve(context.Background(), 1, 1, qty)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, initial-succeeded*qty, stocks.available(1, 1))
	assert.GreaterOrEqual(t, stocks.available(1, 1), 0)
}

func TestReleaseReturnsStock(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(1, 1, 5)
	svc := newInventoryService(t, stocks)

	require.NoError(t, svc.Reserve(context.Background(), 1, 1, 4))
	require.NoError(t, svc.Release(context.Background(), 1, 1, 4))
	assert.Equal(t, 5, stocks.available(1, 1))
}

func TestReleaseUnknownStockRow(t *testing.T) {
	svc := newInventoryService(t, newMockStockRepo())

	err := svc.Release(context.Background(), 42, 1, 1)
	assert.ErrorIs(t, err, repositories.ErrStockNotFound)
}

func TestRestockCreatesRow(t *testing.T) {
	stocks := newMockStockRepo()
	svc := newInventoryService(t, stocks)

	stock, err := svc.Restock(context.Background(), 7, 2, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, stock.AvailableQuantity)
	assert.Equal(t, 15, stocks.available(7, 2))
}

func TestRestockIncrementsExistingRow(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(7, 2, 10)
	svc := newInventoryService(t, stocks)

	stock, err := svc.Restock(context.Background(), 7, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, stock.AvailableQuantity)
}

func TestRestockRejectsNonPositiveDelta(t *testing.T) {
	svc := newInventoryService(t, newMockStockRepo())

	_, err := svc.Restock(context.Background(), 1, 1, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
}

// contentiousStockRepo fails the first failures reservations with a
// contention error, then delegates to the real in-memory repository.
type contentiousStockRepo struct {
	*mockStockRepo
	mu       sync.Mutex
	failures int
	attempts int
}

func (c *contentiousStockRepo) Reserve(ctx context.Context, tx *gorm.DB, productID, storeID uint, qty int) error {
	c.mu.Lock()
	c.attempts++
	fail := c.attempts <= c.failures
	c.mu.Unlock()
	if fail {
		return repositories.ErrStockContention
	}
	return c.mockStockRepo.Reserve(ctx, tx, productID, storeID, qty)
}

func TestReserveRetriesContention(t *testing.T) {
	inner := newMockStockRepo()
	inner.put(1, 1, 10)
	repo := &contentiousStockRepo{mockStockRepo: inner, failures: 2}
	svc := newInventoryService(t, repo)

	err := svc.Reserve(context.Background(), 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.attempts)
	assert.Equal(t, 8, inner.available(1, 1))
}

func TestReserveGivesUpAfterPersistentContention(t *testing.T) {
	inner := newMockStockRepo()
	inner.put(1, 1, 10)
	repo := &contentiousStockRepo{mockStockRepo: inner, failures: 100}
	svc := newInventoryService(t, repo)

	// Backoff runs between attempts only (50ms + 100ms here); the
	// final failure returns without sleeping again.
	start := time.Now()
	err := svc.Reserve(context.Background(), 1, 1, 2)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, repositories.ErrStockContention)
	assert.Equal(t, 3, repo.attempts)
	assert.Less(t, elapsed, 280*time.Millisecond)
	assert.Equal(t, 10, inner.available(1, 1))
}

func TestGetStock(t *testing.T) {
	stocks := newMockStockRepo()
	stocks.put(3, 1, 8)
	svc := newInventoryService(t, stocks)

	stock, err := svc.GetStock(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, stock.AvailableQuantity)

	_, err = svc.GetStock(context.Background(), 3, 9)
	assert.ErrorIs(t, err, repositories.ErrStockNotFound)
}
