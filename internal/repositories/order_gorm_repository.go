package repositories

import (
	"fmt"

	"crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var orderOrderFields = map[string]string{
	"order_date":   "order_date",
	"total_amount": "total_amount",
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves orders matching the filter with their customer and
// products preloaded.
func (r *GORMOrderRepository) GetAll(filter OrderFilter, orderBy OrderBy) ([]models.Order, error) {
	tx := r.db.Model(&models.Order{}).Preload("Customer").Preload("Products")
	if filter.OrderDateGte != nil {
		tx = tx.Where("order_date >= ?", *filter.OrderDateGte)
	}

	clauses, err := orderBy.Clauses(orderOrderFields)
	if err != nil {
		return nil, err
	}
	for _, ord := range clauses {
		tx = tx.Order(ord)
	}

	var orders []models.Order
	if err := tx.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID with associations preloaded.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Customer").Preload("Products").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create persists the order together with its product associations in one
// transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Count returns the total number of orders.
func (r *GORMOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// TotalRevenue returns the sum of all order totals, zero when there are no
// orders.
func (r *GORMOrderRepository) TotalRevenue() (float64, error) {
	var revenue float64
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, fmt.Errorf("failed to sum order totals: %w", err)
	}
	return revenue, nil
}
