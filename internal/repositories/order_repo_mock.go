package repositories

import (
	"fmt"
	"sync"

	"crm/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders    map[string]models.Order
	insertSeq []string
	mu        sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns orders matching the filter in insertion order.
func (r *MockOrderRepository) GetAll(filter OrderFilter, orderBy OrderBy) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := orderBy.Clauses(orderOrderFields); err != nil {
		return nil, err
	}
	orderList := make([]models.Order, 0, len(r.orders))
	for _, id := range r.insertSeq {
		order := r.orders[id]
		if filter.OrderDateGte != nil && order.OrderDate.Before(*filter.OrderDateGte) {
			continue
		}
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	r.orders[order.ID] = *order
	r.insertSeq = append(r.insertSeq, order.ID)
	return nil
}

// Count returns the number of stored orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

// TotalRevenue sums the stored orders' totals.
func (r *MockOrderRepository) TotalRevenue() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var revenue float64
	for _, order := range r.orders {
		revenue += order.TotalAmount
	}
	return revenue, nil
}
