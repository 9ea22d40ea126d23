package service

import (
	"context"
	"sync"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
)

// memStore is an in-memory DatabaseRepository with the per-call atomicity
// the real store provides.
type memStore struct {
	mu       sync.Mutex
	products map[string]domain.Product
	orders   map[string]domain.Order

	// updateStatusErrs injects a one-shot failure for UpdateOrderStatus on
	// the given order ID.
	updateStatusErrs map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		products:         make(map[string]domain.Product),
		orders:           make(map[string]domain.Order),
		updateStatusErrs: make(map[string]error),
	}
}

func (m *memStore) addProduct(id, name string, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[id] = domain.Product{ID: id, Name: name, StockQuantity: stock}
}

func (m *memStore) stock(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].StockQuantity
}

func (m *memStore) orderStatus(id string) domain.OrderStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id].Status
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) GetProductsByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result[id] = &p
		}
	}
	return result, nil
}

func (m *memStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *memStore) CreateProduct(ctx context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memStore) SaveProduct(ctx context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *memStore) CreateOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	m.orders[order.ID] = order
	return nil
}

func (m *memStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return &o, nil
}

func (m *memStore) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []domain.Order
	for _, o := range m.orders {
		if o.Status == status {
			o.Items = append([]domain.OrderItem(nil), o.Items...)
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *memStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.updateStatusErrs[id]; ok {
		delete(m.updateStatusErrs, id)
		return err
	}
	o := m.orders[id]
	o.Status = status
	m.orders[id] = o
	return nil
}

// setOrderStatus bypasses the service layer for test setup.
func (m *memStore) setOrderStatus(id string, status domain.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[id]
	o.Status = status
	m.orders[id] = o
}

type mockCacheRepo struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{keys: make(map[string]bool)}
}

func (m *mockCacheRepo) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

// scriptNotifier replays a fixed sequence of results; calls past the end of
// the script succeed.
type scriptNotifier struct {
	mu     sync.Mutex
	script []error
	calls  int
}

func (n *scriptNotifier) Notify(ctx context.Context, orderID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	var err error
	if n.calls < len(n.script) {
		err = n.script[n.calls]
	}
	n.calls++
	return err
}

func (n *scriptNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}
