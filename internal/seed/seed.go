// Package seed resets the database and fills it with generated sample
// data for development. It writes through GORM directly, bypassing the
// service layer.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"crm/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productCatalog is the fixed set of product names the seeder creates.
var productCatalog = []string{
	"Laptop", "Smartphone", "Headphones", "Monitor", "Keyboard",
	"Mouse", "Tablet", "Smartwatch", "Printer", "Router",
	"External HDD", "USB Drive", "Webcam", "Microphone", "Speaker",
}

// Seeder generates sample CRM data.
type Seeder struct {
	DB        *gorm.DB
	Customers int
	Orders    int
}

// NewSeeder creates a seeder with the given target counts.
func NewSeeder(db *gorm.DB, customers, orders int) *Seeder {
	return &Seeder{
		DB:        db,
		Customers: customers,
		Orders:    orders,
	}
}

// Run deletes all orders, customers and products (in that dependency
// order) and reseeds them inside a single transaction; any failure rolls
// the whole reset back.
func (s *Seeder) Run() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		log.Println("Deleting old data...")
		if err := tx.Exec("DELETE FROM order_products").Error; err != nil {
			return fmt.Errorf("failed to clear order associations: %w", err)
		}
		for _, model := range []interface{}{&models.Order{}, &models.Customer{}, &models.Product{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete old data: %w", err)
			}
		}

		log.Println("Creating customers...")
		customers, err := s.createCustomers(tx)
		if err != nil {
			return err
		}

		log.Println("Creating products...")
		products, err := s.createProducts(tx)
		if err != nil {
			return err
		}

		log.Println("Creating orders...")
		if err := s.createOrders(tx, customers, products); err != nil {
			return err
		}

		log.Printf("Database seeded: %d customers, %d products, %d orders",
			len(customers), len(products), s.Orders)
		return nil
	})
}

// createCustomers generates customers with unique emails; roughly 70% get
// a phone in one of the two accepted formats.
func (s *Seeder) createCustomers(tx *gorm.DB) ([]models.Customer, error) {
	customers := make([]models.Customer, 0, s.Customers)
	for i := 0; i < s.Customers; i++ {
		phone := ""
		if gofakeit.Number(1, 100) <= 70 {
			if gofakeit.Bool() {
				phone = "+1" + gofakeit.Numerify("##########")
			} else {
				phone = gofakeit.Numerify("###-###-####")
			}
		}
		customer := models.Customer{
			ID:    uuid.New().String(),
			Name:  gofakeit.Name(),
			Email: fmt.Sprintf("%s.%d@%s", gofakeit.Username(), i, gofakeit.DomainName()),
			Phone: phone,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, fmt.Errorf("failed to seed customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// createProducts generates the fixed catalog with randomized price/stock.
func (s *Seeder) createProducts(tx *gorm.DB) ([]models.Product, error) {
	products := make([]models.Product, 0, len(productCatalog))
	for _, name := range productCatalog {
		product := models.Product{
			ID:    uuid.New().String(),
			Name:  name,
			Price: gofakeit.Price(10, 1000),
			Stock: gofakeit.Number(0, 100),
		}
		if err := tx.Create(&product).Error; err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", name, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// createOrders generates orders over random customers and random non-empty
// product subsets, totals computed from the chosen products' prices.
func (s *Seeder) createOrders(tx *gorm.DB, customers []models.Customer, products []models.Product) error {
	if len(customers) == 0 || len(products) == 0 {
		return fmt.Errorf("cannot seed orders without customers and products")
	}
	for i := 0; i < s.Orders; i++ {
		customer := customers[gofakeit.Number(0, len(customers)-1)]
		chosen := randomProductSubset(products)

		var total float64
		for _, p := range chosen {
			total += p.Price
		}

		order := models.Order{
			ID:          uuid.New().String(),
			CustomerID:  customer.ID,
			Products:    chosen,
			TotalAmount: total,
			OrderDate:   time.Now().AddDate(0, 0, -gofakeit.Number(0, 30)),
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}
	return nil
}

// randomProductSubset picks 1-5 distinct products.
func randomProductSubset(products []models.Product) []models.Product {
	size := gofakeit.Number(1, 5)
	if size > len(products) {
		size = len(products)
	}
	indexes := rand.Perm(len(products))[:size]
	subset := make([]models.Product, 0, size)
	for _, idx := range indexes {
		subset = append(subset, products[idx])
	}
	return subset
}
