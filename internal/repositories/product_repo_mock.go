package repositories

import (
	"fmt"
	"sync"

	"crm/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products  map[string]models.Product
	insertSeq []string
	mu        sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order. The orderBy fields are
// validated but insertion order is kept; tests that need deterministic
// ordering use the GORM repository.
func (r *MockProductRepository) GetAll(orderBy OrderBy) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := orderBy.Clauses(productOrderFields); err != nil {
		return nil, err
	}
	productList := make([]models.Product, 0, len(r.products))
	for _, id := range r.insertSeq {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// GetByIDs returns every stored product whose ID appears in ids.
func (r *MockProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	r.insertSeq = append(r.insertSeq, product.ID)
	return nil
}

// IncrementLowStock adds increment to every product with stock below
// threshold. The whole pass runs under one lock, mirroring the row locks
// the GORM implementation takes.
func (r *MockProductRepository) IncrementLowStock(threshold, increment int) ([]RestockUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updates []RestockUpdate
	for _, id := range r.insertSeq {
		product := r.products[id]
		if product.Stock >= threshold {
			continue
		}
		oldStock := product.Stock
		product.Stock += increment
		r.products[id] = product
		updates = append(updates, RestockUpdate{
			Name:     product.Name,
			OldStock: oldStock,
			NewStock: product.Stock,
		})
	}
	return updates, nil
}
