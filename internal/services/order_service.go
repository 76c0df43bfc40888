package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/pkg/rabbitmq"
)

// OrderInput carries the fields of an order create request.
type OrderInput struct {
	CustomerID string     `json:"customer_id"`
	ProductIDs []string   `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

// OrderResult is the structured outcome of an order mutation.
type OrderResult struct {
	Order   *models.Order
	Message string
	Success bool
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	mqClient     *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil when no
// broker is configured.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.ProductRepository,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		mqClient:     mqClient,
	}
}

// ListOrders retrieves orders matching the filter.
func (s *OrderService) ListOrders(filter repositories.OrderFilter, orderBy repositories.OrderBy) ([]models.Order, error) {
	return s.orderRepo.GetAll(filter, orderBy)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// TotalOrders returns the order count.
func (s *OrderService) TotalOrders() (int64, error) {
	return s.orderRepo.Count()
}

// TotalRevenue returns the sum of all order totals.
func (s *OrderService) TotalRevenue() (float64, error) {
	return s.orderRepo.TotalRevenue()
}

// CreateOrder validates the customer and every product, computes the total
// from the resolved products' prices and persists the order with its
// associations. Repeated product ids collapse to a single line item.
// Creation fails atomically when any reference is missing.
func (s *OrderService) CreateOrder(input OrderInput) OrderResult {
	if len(input.ProductIDs) == 0 {
		return OrderResult{Message: "At least one product is required", Success: false}
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return OrderResult{
			Message: fmt.Sprintf("Customer with ID %s does not exist", input.CustomerID),
			Success: false,
		}
	}

	productIDs := uniqueIDs(input.ProductIDs)
	products, err := s.productRepo.GetByIDs(productIDs)
	if err != nil {
		return OrderResult{Message: fmt.Sprintf("Error resolving products: %v", err), Success: false}
	}
	if len(products) != len(productIDs) {
		found := make(map[string]bool, len(products))
		for _, p := range products {
			found[p.ID] = true
		}
		var missing []string
		for _, id := range productIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return OrderResult{
			Message: fmt.Sprintf("Invalid product IDs: %s", strings.Join(missing, ", ")),
			Success: false,
		}
	}

	var total float64
	for _, p := range products {
		total += p.Price
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		Customer:    *customer,
		Products:    products,
		TotalAmount: total,
		OrderDate:   orderDate,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return OrderResult{Message: fmt.Sprintf("Error creating order: %v", err), Success: false}
	}

	s.publishOrderCreated(order)

	return OrderResult{
		Order:   order,
		Message: "Order created successfully",
		Success: true,
	}
}

// uniqueIDs keeps the first occurrence of each id, preserving order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":    order.ID,
		"customerID": order.CustomerID,
		"total":      order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.mqClient.Publish("crm", "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}
