package repositories

import (
	"time"

	"crm/internal/models"
)

// CustomerFilter holds the supported customer lookups: exact match and
// case-insensitive substring match on name, email and phone, a combined
// name-or-email search and a created-date range (inclusive on both ends).
type CustomerFilter struct {
	Name           string
	Email          string
	NameIcontains  string
	EmailIcontains string
	PhoneIcontains string
	Search         string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// IsZero reports whether no lookup is set.
func (f CustomerFilter) IsZero() bool {
	return f == CustomerFilter{}
}

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll(filter CustomerFilter, orderBy OrderBy) ([]models.Customer, error)
	GetByID(id string) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Count() (int64, error)
}
