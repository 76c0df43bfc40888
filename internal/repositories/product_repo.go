package repositories

import (
	"crm/internal/models"
)

// RestockUpdate describes a single product's stock change performed by
// the low-stock restock operation.
type RestockUpdate struct {
	Name     string
	OldStock int
	NewStock int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(orderBy OrderBy) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	// IncrementLowStock adds increment to the stock of every product whose
	// stock is strictly below threshold, atomically with respect to
	// concurrent restock calls, and reports each change.
	IncrementLowStock(threshold, increment int) ([]RestockUpdate, error)
}
