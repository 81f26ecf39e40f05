package memstore

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	customerrors "github.com/avdonin/foodorders/internal/errors"
	"github.com/avdonin/foodorders/internal/storage/order"
)

// MemStore is a mutex-guarded order table used by the stub store when no
// postgres dsn is configured, and by tests.
type MemStore struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

func NewMemStore() *MemStore {
	return &MemStore{orders: make(map[string]order.Order)}
}

func (m *MemStore) GetOrderByID(_ context.Context, orderID string) (*order.Order, *customerrors.CustomError) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ord, ok := m.orders[orderID]
	if !ok {
		return nil, &customerrors.CustomError{
			Message: fmt.Sprintf("Order '%s' is not found", orderID),
			Status:  http.StatusNotFound,
		}
	}
	return &ord, nil
}

func (m *MemStore) AddOrder(_ context.Context, ord *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.orders[ord.OrderID]
	if ok {
		return fmt.Errorf("Order '%s' exists already", ord.OrderID)
	}
	m.orders[ord.OrderID] = *ord
	return nil
}

func (m *MemStore) UpdateStatus(_ context.Context, orderID string, status order.Status) (*order.Order, *customerrors.CustomError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ord, ok := m.orders[orderID]
	if !ok {
		return nil, &customerrors.CustomError{
			Message: fmt.Sprintf("Order '%s' is not found", orderID),
			Status:  http.StatusNotFound,
		}
	}
	ord.Status = status
	m.orders[orderID] = ord
	return &ord, nil
}

func (m *MemStore) DeleteOrderByID(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, orderID)
	return nil
}
