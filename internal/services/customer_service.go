package services

import (
	"encoding/json"
	"fmt"
	"log"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/pkg/rabbitmq"
)

// CustomerInput carries the fields of a customer create request.
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerResult is the structured outcome of a customer mutation.
type CustomerResult struct {
	Customer *models.Customer
	Message  string
	Success  bool
}

// BulkCustomerResult is the structured outcome of a bulk customer create.
type BulkCustomerResult struct {
	Customers    []models.Customer
	Errors       []string
	SuccessCount int
	ErrorCount   int
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	mqClient *rabbitmq.Client
}

// NewCustomerService creates a new CustomerService. mqClient may be nil when
// no broker is configured.
func NewCustomerService(repo repositories.CustomerRepository, mqClient *rabbitmq.Client) *CustomerService {
	return &CustomerService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListCustomers retrieves customers matching the filter.
func (s *CustomerService) ListCustomers(filter repositories.CustomerFilter, orderBy repositories.OrderBy) ([]models.Customer, error) {
	return s.repo.GetAll(filter, orderBy)
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id string) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// TotalCustomers returns the customer count.
func (s *CustomerService) TotalCustomers() (int64, error) {
	return s.repo.Count()
}

// CreateCustomer validates and persists a single customer. Validation
// failures come back as a structured result, never as an error.
func (s *CustomerService) CreateCustomer(input CustomerInput) CustomerResult {
	if err := s.validateInput(input); err != nil {
		return CustomerResult{Message: err.Error(), Success: false}
	}

	customer := &models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.repo.Create(customer); err != nil {
		return CustomerResult{Message: fmt.Sprintf("Error creating customer: %v", err), Success: false}
	}

	s.publishCustomerCreated(customer)

	return CustomerResult{
		Customer: customer,
		Message:  "Customer created successfully",
		Success:  true,
	}
}

// BulkCreateCustomers validates and persists each row independently. A
// failing row is reported with its 1-based position and does not affect
// sibling rows.
func (s *CustomerService) BulkCreateCustomers(inputs []CustomerInput) BulkCustomerResult {
	var created []models.Customer
	var errs []string

	for idx, input := range inputs {
		if err := s.validateInput(input); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", idx+1, err))
			continue
		}
		customer := &models.Customer{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		}
		if err := s.repo.Create(customer); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", idx+1, err))
			continue
		}
		s.publishCustomerCreated(customer)
		created = append(created, *customer)
	}

	return BulkCustomerResult{
		Customers:    created,
		Errors:       errs,
		SuccessCount: len(created),
		ErrorCount:   len(errs),
	}
}

func (s *CustomerService) validateInput(input CustomerInput) error {
	if input.Name == "" {
		return fmt.Errorf("Name is required")
	}
	if err := validateEmail(input.Email); err != nil {
		return err
	}
	if err := validatePhone(input.Phone); err != nil {
		return err
	}
	if existing, err := s.repo.GetByEmail(input.Email); err == nil && existing != nil {
		return fmt.Errorf("Email '%s' already registered", input.Email)
	}
	return nil
}

func (s *CustomerService) publishCustomerCreated(customer *models.Customer) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"customerID": customer.ID,
		"email":      customer.Email,
	})
	if err != nil {
		log.Printf("Failed to marshal customer event: %v", err)
		return
	}
	if err := s.mqClient.Publish("crm", "customer.created", body); err != nil {
		log.Printf("Warning: Failed to publish customer created event for %s: %v", customer.ID, err)
	}
}
