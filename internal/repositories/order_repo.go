package repositories

import (
	"time"

	"crm/internal/models"
)

// OrderFilter holds the supported order lookups.
type OrderFilter struct {
	OrderDateGte *time.Time
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(filter OrderFilter, orderBy OrderBy) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	// Create persists the order and its product associations atomically.
	Create(order *models.Order) error
	Count() (int64, error)
	TotalRevenue() (float64, error)
}
