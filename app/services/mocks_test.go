package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database so services can run their
// transaction lifecycle. All data access goes through the in-memory
// mock repositories below, which ignore the transaction handle.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

type stockKey struct {
	productID uint
	storeID   uint
}

// mockStockRepo serializes every mutation behind a mutex, matching the
// row-level atomicity of the real conditional update.
type mockStockRepo struct {
	mu     sync.Mutex
	stocks map[stockKey]*models.Stock
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{stocks: make(map[stockKey]*models.Stock)}
}

func (m *mockStockRepo) put(productID, storeID uint, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stocks[stockKey{productID, storeID}] = &models.Stock{
		ID:                uint(len(m.stocks) + 1),
		ProductID:         productID,
		StoreID:           storeID,
		AvailableQuantity: qty,
	}
}

func (m *mockStockRepo) available(productID, storeID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stocks[stockKey{productID, storeID}]
	if !ok {
		return -1
	}
	return s.AvailableQuantity
}

func (m *mockStockRepo) GetByProductAndStore(_ context.Context, productID, storeID uint) (*models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stocks[stockKey{productID, storeID}]
	if !ok {
		return nil, repositories.ErrStockNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockStockRepo) GetByStore(_ context.Context, storeID uint) ([]models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Stock
	for k, s := range m.stocks {
		if k.storeID == storeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStockRepo) Reserve(_ context.Context, _ *gorm.DB, productID, storeID uint, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stocks[stockKey{productID, storeID}]
	if !ok {
		return repositories.ErrStockNotFound
	}
	if s.AvailableQuantity < qty {
		return repositories.ErrInsufficientStock
	}
	s.AvailableQuantity -= qty
	s.Updated = time.Now()
	return nil
}

func (m *mockStockRepo) Release(_ context.Context, _ *gorm.DB, productID, storeID uint, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stocks[stockKey{productID, storeID}]
	if !ok {
		return repositories.ErrStockNotFound
	}
	s.AvailableQuantity += qty
	s.Updated = time.Now()
	return nil
}

func (m *mockStockRepo) Restock(_ context.Context, productID, storeID uint, delta int) (*models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := stockKey{productID, storeID}
	s, ok := m.stocks[key]
	if !ok {
		s = &models.Stock{
			ID:        uint(len(m.stocks) + 1),
			ProductID: productID,
			StoreID:   storeID,
		}
		m.stocks[key] = s
	}
	s.AvailableQuantity += delta
	s.Updated = time.Now()
	cp := *s
	return &cp, nil
}

type mockProductRepo struct {
	mu       sync.Mutex
	products map[uint]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uint]*models.Product)}
}

func (m *mockProductRepo) GetProducts(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) GetByStore(_ context.Context, storeID uint) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetByCategory(_ context.Context, categoryID uint) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		if p.ProductCategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Create(_ context.Context, _ *gorm.DB, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == 0 {
		product.ID = uint(len(m.products) + 1)
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) IncrementSoldAmount(_ context.Context, _ *gorm.DB, id uint, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.SoldAmount += qty
	}
	return nil
}

type mockOrderRepo struct {
	mu     sync.Mutex
	orders map[uint]*models.Order
	nextID uint
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uint]*models.Order), nextID: 1}
}

func (m *mockOrderRepo) Create(_ context.Context, _ *gorm.DB, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.nextID
	m.nextID++
	order.Created = time.Now()
	order.Updated = order.Created
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) GetByIDWithItems(ctx context.Context, id uint) (*models.Order, error) {
	return m.GetByID(ctx, id)
}

func (m *mockOrderRepo) GetByIDForUpdate(ctx context.Context, _ *gorm.DB, id uint) (*models.Order, error) {
	return m.GetByID(ctx, id)
}

func (m *mockOrderRepo) GetByCustomerID(_ context.Context, customerID uint) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ *gorm.DB, orderID uint, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[orderID]; ok {
		o.Status = status
		o.Updated = time.Now()
	}
	return nil
}

func (m *mockOrderRepo) Touch(_ context.Context, _ *gorm.DB, orderID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[orderID]; ok {
		o.Updated = time.Now()
	}
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, _ *gorm.DB, orderID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, orderID)
	return nil
}

type mockItemRepo struct {
	mu     sync.Mutex
	items  map[uint]*models.Item
	nextID uint
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[uint]*models.Item), nextID: 1}
}

func (m *mockItemRepo) Create(_ context.Context, _ *gorm.DB, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) GetByOrderAndID(_ context.Context, _ *gorm.DB, orderID, itemID uint) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok || it.OrderID != orderID {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *mockItemRepo) ListByOrder(ctx context.Context, orderID uint) ([]models.Item, error) {
	return m.ListByOrderTx(ctx, nil, orderID)
}

func (m *mockItemRepo) ListByOrderTx(_ context.Context, _ *gorm.DB, orderID uint) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Item
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockItemRepo) Update(_ context.Context, _ *gorm.DB, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) Delete(_ context.Context, _ *gorm.DB, itemID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, itemID)
	return nil
}

func (m *mockItemRepo) DeleteByOrder(_ context.Context, _ *gorm.DB, orderID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, it := range m.items {
		if it.OrderID == orderID {
			delete(m.items, id)
		}
	}
	return nil
}

type mockCustomerRepo struct {
	customers map[uint]*models.Customer
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[uint]*models.Customer)}
}

func (m *mockCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	if customer.ID == 0 {
		customer.ID = uint(len(m.customers) + 1)
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCustomerRepo) FindByUserID(_ context.Context, userID uint) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

type mockStoreRepo struct {
	stores map[uint]*models.Store
}

func newMockStoreRepo() *mockStoreRepo {
	return &mockStoreRepo{stores: make(map[uint]*models.Store)}
}

func (m *mockStoreRepo) Create(_ context.Context, store *models.Store) error {
	if store.ID == 0 {
		store.ID = uint(len(m.stores) + 1)
	}
	m.stores[store.ID] = store
	return nil
}

func (m *mockStoreRepo) GetByID(_ context.Context, id uint) (*models.Store, error) {
	s, ok := m.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockStoreRepo) GetByUserID(_ context.Context, userID uint) (*models.Store, error) {
	for _, s := range m.stores {
		if s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStoreRepo) GetStores(_ context.Context) ([]models.Store, error) {
	var out []models.Store
	for _, s := range m.stores {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStoreRepo) Update(_ context.Context, store *models.Store) error {
	m.stores[store.ID] = store
	return nil
}

func (m *mockStoreRepo) Delete(_ context.Context, id uint) error {
	delete(m.stores, id)
	return nil
}

func (m *mockStoreRepo) IncrementCatalogCount(_ context.Context, _ *gorm.DB, id uint) error {
	if s, ok := m.stores[id]; ok {
		s.ProductCatalogCount++
	}
	return nil
}

type mockCategoryRepo struct {
	categories map[uint]*models.ProductCategory
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uint]*models.ProductCategory)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *models.ProductCategory) error {
	if category.ID == 0 {
		category.ID = uint(len(m.categories) + 1)
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uint) (*models.ProductCategory, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) GetCategories(_ context.Context) ([]models.ProductCategory, error) {
	var out []models.ProductCategory
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *models.ProductCategory) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(m.categories, id)
	return nil
}

type mockUserRepo struct {
	users map[uint]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(m.users) + 1)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

type mockImageRepo struct {
	images map[uint]*models.Image
	nextID uint
}

func newMockImageRepo() *mockImageRepo {
	return &mockImageRepo{images: make(map[uint]*models.Image), nextID: 1}
}

func (m *mockImageRepo) Create(_ context.Context, image *models.Image) error {
	image.ID = m.nextID
	m.nextID++
	m.images[image.ID] = image
	return nil
}

func (m *mockImageRepo) GetByID(_ context.Context, id uint) (*models.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (m *mockImageRepo) GetByProduct(_ context.Context, productID uint) (*models.Image, error) {
	for _, img := range m.images {
		if img.ProductID != nil && *img.ProductID == productID {
			cp := *img
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockImageRepo) ListByProduct(_ context.Context, productID uint) ([]models.Image, error) {
	var out []models.Image
	for _, img := range m.images {
		if img.ProductID != nil && *img.ProductID == productID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (m *mockImageRepo) ListByProductIDs(_ context.Context, productIDs []uint) ([]models.Image, error) {
	var out []models.Image
	for _, img := range m.images {
		if img.ProductID == nil {
			continue
		}
		for _, id := range productIDs {
			if *img.ProductID == id {
				out = append(out, *img)
				break
			}
		}
	}
	return out, nil
}

func (m *mockImageRepo) GetByUser(_ context.Context, userID uint) (*models.Image, error) {
	for _, img := range m.images {
		if img.UserID != nil && *img.UserID == userID {
			cp := *img
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockImageRepo) Update(_ context.Context, image *models.Image) error {
	m.images[image.ID] = image
	return nil
}

func (m *mockImageRepo) Delete(_ context.Context, id uint) error {
	delete(m.images, id)
	return nil
}
