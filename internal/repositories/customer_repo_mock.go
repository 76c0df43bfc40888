package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"crm/internal/models"

	"github.com/google/uuid"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[string]models.Customer
	insertSeq []string
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// GetAll returns customers matching the filter in insertion order, then
// applies orderBy.
func (r *MockCustomerRepository) GetAll(filter CustomerFilter, orderBy OrderBy) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := orderBy.Clauses(customerOrderFields); err != nil {
		return nil, err
	}

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, id := range r.insertSeq {
		c := r.customers[id]
		if !matchesCustomerFilter(c, filter) {
			continue
		}
		customerList = append(customerList, c)
	}
	sortCustomers(customerList, orderBy)
	return customerList, nil
}

func matchesCustomerFilter(c models.Customer, f CustomerFilter) bool {
	if f.Name != "" && c.Name != f.Name {
		return false
	}
	if f.Email != "" && c.Email != f.Email {
		return false
	}
	if f.NameIcontains != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.NameIcontains)) {
		return false
	}
	if f.EmailIcontains != "" && !strings.Contains(strings.ToLower(c.Email), strings.ToLower(f.EmailIcontains)) {
		return false
	}
	if f.PhoneIcontains != "" && !strings.Contains(strings.ToLower(c.Phone), strings.ToLower(f.PhoneIcontains)) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			return false
		}
	}
	if f.CreatedFrom != nil && c.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && c.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

func sortCustomers(customers []models.Customer, orderBy OrderBy) {
	if len(orderBy) == 0 {
		return
	}
	sort.SliceStable(customers, func(i, j int) bool {
		for _, field := range orderBy {
			desc := strings.HasPrefix(field, "-")
			name := strings.TrimPrefix(field, "-")
			a, b := customerField(customers[i], name), customerField(customers[j], name)
			if a == b {
				continue
			}
			if desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func customerField(c models.Customer, name string) string {
	switch name {
	case "name":
		return c.Name
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	case "created_at":
		return c.CreatedAt.Format("2006-01-02T15:04:05.000000000")
	}
	return ""
}

// GetByID returns a customer by its ID.
func (r *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer with ID %s not found", id)
	}
	return &customer, nil
}

// GetByEmail returns a customer by email.
func (r *MockCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			customer := c
			return &customer, nil
		}
	}
	return nil, fmt.Errorf("customer with email %s not found", email)
}

// Create adds a new customer, enforcing email uniqueness like the real
// store's unique index.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.Email == customer.Email {
			return fmt.Errorf("customer with email %s already exists", customer.Email)
		}
	}
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	r.customers[customer.ID] = *customer
	r.insertSeq = append(r.insertSeq, customer.ID)
	return nil
}

// Count returns the number of stored customers.
func (r *MockCustomerRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}
