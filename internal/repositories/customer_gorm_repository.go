package repositories

import (
	"fmt"

	"crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var customerOrderFields = map[string]string{
	"name":       "name",
	"email":      "email",
	"phone":      "phone",
	"created_at": "created_at",
}

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetAll retrieves customers matching the filter, ordered per orderBy.
func (r *GORMCustomerRepository) GetAll(filter CustomerFilter, orderBy OrderBy) ([]models.Customer, error) {
	tx := r.db.Model(&models.Customer{})
	if filter.Name != "" {
		tx = tx.Where("name = ?", filter.Name)
	}
	if filter.Email != "" {
		tx = tx.Where("email = ?", filter.Email)
	}
	if filter.NameIcontains != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+lowerPattern(filter.NameIcontains)+"%")
	}
	if filter.EmailIcontains != "" {
		tx = tx.Where("LOWER(email) LIKE ?", "%"+lowerPattern(filter.EmailIcontains)+"%")
	}
	if filter.PhoneIcontains != "" {
		tx = tx.Where("LOWER(phone) LIKE ?", "%"+lowerPattern(filter.PhoneIcontains)+"%")
	}
	if filter.Search != "" {
		pattern := "%" + lowerPattern(filter.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		tx = tx.Where("created_at <= ?", *filter.CreatedTo)
	}

	clauses, err := orderBy.Clauses(customerOrderFields)
	if err != nil {
		return nil, err
	}
	for _, clause := range clauses {
		tx = tx.Order(clause)
	}

	var customers []models.Customer
	if err := tx.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by its ID from the database.
func (r *GORMCustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get customer by ID %s: %w", id, err)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by email from the database.
func (r *GORMCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get customer by email %s: %w", email, err)
	}
	return &customer, nil
}

// Create creates a new customer in the database.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Count returns the total number of customers.
func (r *GORMCustomerRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
