package services

import (
	"fmt"

	"crm/internal/models"
	"crm/internal/repositories"
)

// ProductInput carries the fields of a product create request. Stock is a
// pointer so an omitted stock can default to zero while an explicit
// negative value is rejected.
type ProductInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock *int    `json:"stock"`
}

// ProductResult is the structured outcome of a product mutation.
type ProductResult struct {
	Product *models.Product
	Message string
	Success bool
}

// RestockResult is the structured outcome of the low-stock restock.
type RestockResult struct {
	Success         bool
	Message         string
	UpdatedProducts []string
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves all products.
func (s *ProductService) ListProducts(orderBy repositories.OrderBy) ([]models.Product, error) {
	return s.repo.GetAll(orderBy)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and persists a product. Stock defaults to 0 when
// absent.
func (s *ProductService) CreateProduct(input ProductInput) ProductResult {
	if input.Name == "" {
		return ProductResult{Message: "Name is required", Success: false}
	}
	if input.Price <= 0 {
		return ProductResult{Message: "Price must be greater than 0", Success: false}
	}
	stock := 0
	if input.Stock != nil {
		if *input.Stock < 0 {
			return ProductResult{Message: "Stock cannot be negative", Success: false}
		}
		stock = *input.Stock
	}

	product := &models.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: stock,
	}
	if err := s.repo.Create(product); err != nil {
		return ProductResult{Message: fmt.Sprintf("Error creating product: %v", err), Success: false}
	}

	return ProductResult{
		Product: product,
		Message: "Product created successfully",
		Success: true,
	}
}

// UpdateLowStockProducts raises the stock of every product below the
// low-stock threshold by the fixed increment and reports each change as
// "<name>: <old> -> <new>".
func (s *ProductService) UpdateLowStockProducts() RestockResult {
	updates, err := s.repo.IncrementLowStock(models.LowStockThreshold, models.RestockIncrement)
	if err != nil {
		return RestockResult{Message: fmt.Sprintf("Error updating low-stock products: %v", err), Success: false}
	}

	lines := make([]string, 0, len(updates))
	for _, u := range updates {
		lines = append(lines, fmt.Sprintf("%s: %d -> %d", u.Name, u.OldStock, u.NewStock))
	}

	return RestockResult{
		Success:         true,
		Message:         fmt.Sprintf("Updated %d products with low stock", len(lines)),
		UpdatedProducts: lines,
	}
}
