package repositories

import (
	"fmt"

	"crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var productOrderFields = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products, ordered per orderBy.
func (r *GORMProductRepository) GetAll(orderBy OrderBy) ([]models.Product, error) {
	clauses, err := orderBy.Clauses(productOrderFields)
	if err != nil {
		return nil, err
	}
	tx := r.db.Model(&models.Product{})
	for _, ord := range clauses {
		tx = tx.Order(ord)
	}
	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByIDs retrieves every product whose ID appears in ids. Missing IDs are
// not an error; callers compare the result set against the request.
func (r *GORMProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// IncrementLowStock adds increment to every product with stock below
// threshold. The selected rows are locked for the duration of the
// transaction so concurrent restock calls cannot lose updates.
func (r *GORMProductRepository) IncrementLowStock(threshold, increment int) ([]RestockUpdate, error) {
	var updates []RestockUpdate
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var lowStock []models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("stock < ?", threshold).
			Find(&lowStock).Error; err != nil {
			return fmt.Errorf("failed to select low-stock products: %w", err)
		}

		for i := range lowStock {
			product := &lowStock[i]
			oldStock := product.Stock
			product.Stock += increment
			if err := tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				Update("stock", product.Stock).Error; err != nil {
				return fmt.Errorf("failed to restock product %s: %w", product.ID, err)
			}
			updates = append(updates, RestockUpdate{
				Name:     product.Name,
				OldStock: oldStock,
				NewStock: product.Stock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updates, nil
}
