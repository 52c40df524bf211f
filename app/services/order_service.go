package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/shopapp-dev/shopapp/app/utils/format"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("order item not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrOrderClosed       = errors.New("order is in a terminal status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// OrderService owns orders and their items. All item mutations run in
// a transaction that row-locks the order, so item additions, removals
// and status changes on the same order serialize while distinct orders
// proceed in parallel.
type OrderService struct {
	db           *gorm.DB
	orderRepo    repositories.OrderRepository
	itemRepo     repositories.ItemRepository
	productRepo  repositories.ProductRepositoryImpl
	customerRepo repositories.CustomerRepository
	inventorySvc *InventoryService
	log          *zap.SugaredLogger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	itemRepo repositories.ItemRepository,
	productRepo repositories.ProductRepositoryImpl,
	customerRepo repositories.CustomerRepository,
	inventorySvc *InventoryService,
	log *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		inventorySvc: inventorySvc,
		log:          log,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, customerID uint) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	order := &models.Order{
		OrderCode:  fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8]),
		CustomerID: customerID,
		Status:     models.OrderStatusCreated,
	}
	if err := s.orderRepo.Create(ctx, s.db, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) GetOrdersByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return s.orderRepo.GetByCustomerID(ctx, customerID)
}

// AddItem reserves stock for the product at its store, computes the
// authoritative price total from the product's current price and
// persists the new item. clientPriceTotal is advisory only: a mismatch
// with the computed total is logged, never trusted.
func (s *OrderService) AddItem(ctx context.Context, orderID, productID uint, qty int, clientPriceTotal decimal.Decimal) (*models.Item, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic during AddItem, rolling back", "panic", r)
			tx.Rollback()
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	if order == nil {
		tx.Rollback()
		return nil, ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		tx.Rollback()
		return nil, ErrOrderClosed
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}
	if product == nil {
		tx.Rollback()
		return nil, ErrProductNotFound
	}

	if err := s.inventorySvc.ReserveTx(ctx, tx, product.ID, product.StoreID, qty); err != nil {
		tx.Rollback()
		return nil, err
	}

	priceTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
	if !clientPriceTotal.IsZero() && !clientPriceTotal.Equal(priceTotal) {
		s.log.Warnw("client price total differs from computed total, using computed",
			"order_id", orderID,
			"product_id", productID,
			"client_total", format.Money(clientPriceTotal),
			"computed_total", format.Money(priceTotal))
	}

	item := &models.Item{
		OrderID:    order.ID,
		ProductID:  product.ID,
		Quantity:   qty,
		PriceTotal: priceTotal,
	}
	if err := s.itemRepo.Create(ctx, tx, item); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	if err := s.productRepo.IncrementSoldAmount(ctx, tx, product.ID, qty); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update sold amount: %w", err)
	}

	if err := s.orderRepo.Touch(ctx, tx, order.ID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update order timestamp: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit item creation: %w", err)
	}
	return item, nil
}

// UpdateItemQuantity changes an item's quantity, reserving the
// difference (or releasing it when shrinking) against current stock,
// and recomputes the price total from the product's current price.
func (s *OrderService) UpdateItemQuantity(ctx context.Context, orderID, itemID uint, newQty int) (*models.Item, error) {
	if newQty <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic during UpdateItemQuantity, rolling back", "panic", r)
			tx.Rollback()
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	if order == nil {
		tx.Rollback()
		return nil, ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		tx.Rollback()
		return nil, ErrOrderClosed
	}

	item, err := s.itemRepo.GetByOrderAndID(ctx, tx, orderID, itemID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		tx.Rollback()
		return nil, ErrItemNotFound
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get product %d: %w", item.ProductID, err)
	}
	if product == nil {
		tx.Rollback()
		return nil, ErrProductNotFound
	}

	delta := newQty - item.Quantity
	if delta > 0 {
		if err := s.inventorySvc.ReserveTx(ctx, tx, product.ID, product.StoreID, delta); err != nil {
			tx.Rollback()
			return nil, err
		}
	} else if delta < 0 {
		if err := s.inventorySvc.ReleaseTx(ctx, tx, product.ID, product.StoreID, -delta); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	item.Quantity = newQty
	item.PriceTotal = product.Price.Mul(decimal.NewFromInt(int64(newQty)))
	if err := s.itemRepo.Update(ctx, tx, item); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := s.orderRepo.Touch(ctx, tx, order.ID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update order timestamp: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit item update: %w", err)
	}
	return item, nil
}

// RemoveItem deletes the item and releases its reserved quantity in
// the same transaction, so the release can never happen twice.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uint) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic during RemoveItem, rolling back", "panic", r)
			tx.Rollback()
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to lock order: %w", err)
	}
	if order == nil {
		tx.Rollback()
		return ErrOrderNotFound
	}

	item, err := s.itemRepo.GetByOrderAndID(ctx, tx, orderID, itemID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		tx.Rollback()
		return ErrItemNotFound
	}

	if err := s.releaseItemStock(ctx, tx, item); err != nil {
		tx.Rollback()
		return err
	}

	if err := s.itemRepo.Delete(ctx, tx, item.ID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if err := s.orderRepo.Touch(ctx, tx, order.ID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update order timestamp: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit item removal: %w", err)
	}
	return nil
}

// ChangeStatus enforces the order state machine. Cancelling releases
// the stock of every item in the same transaction as the status write.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID uint, newStatus models.OrderStatus) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic during ChangeStatus, rolling back", "panic", r)
			tx.Rollback()
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to lock order: %w", err)
	}
	if order == nil {
		tx.Rollback()
		return ErrOrderNotFound
	}

	if !validTransition(order.Status, newStatus) {
		tx.Rollback()
		return ErrInvalidTransition
	}

	if newStatus == models.OrderStatusCancelled {
		if err := s.releaseOrderStock(ctx, tx, order.ID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, newStatus); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit status change: %w", err)
	}

	s.log.Infow("order status changed", "order_id", orderID, "from", order.Status, "to", newStatus)
	return nil
}

// DeleteOrder removes the order and its items. Reserved stock is
// released explicitly first, unless the order was already cancelled
// and its stock returned then.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic during DeleteOrder, rolling back", "panic", r)
			tx.Rollback()
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to lock order: %w", err)
	}
	if order == nil {
		tx.Rollback()
		return ErrOrderNotFound
	}

	if order.Status != models.OrderStatusCancelled {
		if err := s.releaseOrderStock(ctx, tx, order.ID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := s.itemRepo.DeleteByOrder(ctx, tx, order.ID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if err := s.orderRepo.Delete(ctx, tx, order.ID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit order deletion: %w", err)
	}
	return nil
}

func (s *OrderService) releaseOrderStock(ctx context.Context, tx *gorm.DB, orderID uint) error {
	items, err := s.itemRepo.ListByOrderTx(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("failed to list order items: %w", err)
	}
	for i := range items {
		if err := s.releaseItemStock(ctx, tx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) releaseItemStock(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get product %d: %w", item.ProductID, err)
	}
	if product == nil {
		// The product row is gone; there is no stock row left to
		// return the quantity to.
		s.log.Warnw("releasing item for missing product, skipping stock release",
			"item_id", item.ID, "product_id", item.ProductID)
		return nil
	}
	if err := s.inventorySvc.ReleaseTx(ctx, tx, product.ID, product.StoreID, item.Quantity); err != nil {
		if errors.Is(err, repositories.ErrStockNotFound) {
			s.log.Warnw("no stock row for released item",
				"item_id", item.ID, "product_id", item.ProductID, "store_id", product.StoreID)
			return nil
		}
		return err
	}
	return nil
}

// validTransition implements Created -> Confirmed -> Shipped with
// cancellation allowed from Created and Confirmed. Shipped and
// Cancelled are terminal.
func validTransition(from, to models.OrderStatus) bool {
	switch from {
	case models.OrderStatusCreated:
		return to == models.OrderStatusConfirmed || to == models.OrderStatusCancelled
	case models.OrderStatusConfirmed:
		return to == models.OrderStatusShipped || to == models.OrderStatusCancelled
	default:
		return false
	}
}
