package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"crm/internal/models"
	"crm/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}))
	return db
}

func TestGORMCustomerRepository_Filters(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMCustomerRepository(db)

	require.NoError(t, repo.Create(&models.Customer{Name: "Alice Smith", Email: "alice@example.com", Phone: "+1234567890"}))
	require.NoError(t, repo.Create(&models.Customer{Name: "Bob Jones", Email: "bob@sample.org", Phone: "123-456-7890"}))
	require.NoError(t, repo.Create(&models.Customer{Name: "Carol Smith", Email: "carol@example.com"}))

	// Case-insensitive substring on name
	customers, err := repo.GetAll(repositories.CustomerFilter{NameIcontains: "smith"}, nil)
	assert.NoError(t, err)
	assert.Len(t, customers, 2)

	// Exact email
	customers, err = repo.GetAll(repositories.CustomerFilter{Email: "bob@sample.org"}, nil)
	assert.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Bob Jones", customers[0].Name)

	// Phone fragment
	customers, err = repo.GetAll(repositories.CustomerFilter{PhoneIcontains: "456-"}, nil)
	assert.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Bob Jones", customers[0].Name)

	// Deterministic ordering
	customers, err = repo.GetAll(repositories.CustomerFilter{}, repositories.OrderBy{"-name"})
	assert.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "Carol Smith", customers[0].Name)
	assert.Equal(t, "Alice Smith", customers[2].Name)

	// Unknown ordering field is rejected
	_, err = repo.GetAll(repositories.CustomerFilter{}, repositories.OrderBy{"password"})
	assert.Error(t, err)

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGORMCustomerRepository_SearchAndCreatedRange(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMCustomerRepository(db)

	require.NoError(t, repo.Create(&models.Customer{Name: "Alice Smith", Email: "alice@example.com"}))
	require.NoError(t, repo.Create(&models.Customer{Name: "Bob Jones", Email: "bob@smithsonian.org"}))
	require.NoError(t, repo.Create(&models.Customer{Name: "Carol White", Email: "carol@sample.org"}))

	// Search matches name or email, case-insensitively
	customers, err := repo.GetAll(repositories.CustomerFilter{Search: "SMITH"}, repositories.OrderBy{"name"})
	assert.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Alice Smith", customers[0].Name)
	assert.Equal(t, "Bob Jones", customers[1].Name)

	// Created range is inclusive on both ends
	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)
	customers, err = repo.GetAll(repositories.CustomerFilter{CreatedFrom: &yesterday, CreatedTo: &tomorrow}, nil)
	assert.NoError(t, err)
	assert.Len(t, customers, 3)

	customers, err = repo.GetAll(repositories.CustomerFilter{CreatedFrom: &tomorrow}, nil)
	assert.NoError(t, err)
	assert.Empty(t, customers)

	customers, err = repo.GetAll(repositories.CustomerFilter{CreatedTo: &yesterday}, nil)
	assert.NoError(t, err)
	assert.Empty(t, customers)
}

func TestGORMCustomerRepository_UniqueEmail(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMCustomerRepository(db)

	require.NoError(t, repo.Create(&models.Customer{Name: "Alice", Email: "dup@example.com"}))
	err := repo.Create(&models.Customer{Name: "Other", Email: "dup@example.com"})
	assert.Error(t, err)
}

func TestGORMProductRepository_IncrementLowStock(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMProductRepository(db)

	require.NoError(t, repo.Create(&models.Product{Name: "Keyboard", Price: 75, Stock: 3}))
	require.NoError(t, repo.Create(&models.Product{Name: "Mouse", Price: 25, Stock: 9}))
	require.NoError(t, repo.Create(&models.Product{Name: "Monitor", Price: 200, Stock: 10}))

	updates, err := repo.IncrementLowStock(10, 10)
	assert.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, repositories.RestockUpdate{Name: "Keyboard", OldStock: 3, NewStock: 13}, updates[0])
	assert.Equal(t, repositories.RestockUpdate{Name: "Mouse", OldStock: 9, NewStock: 19}, updates[1])

	// Stock at the threshold is not eligible; a second pass updates nothing.
	updates, err = repo.IncrementLowStock(10, 10)
	assert.NoError(t, err)
	assert.Empty(t, updates)

	products, err := repo.GetAll(repositories.OrderBy{"name"})
	assert.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Stock, 10)
	}
}

func TestGORMOrderRepository_CreateAndAggregates(t *testing.T) {
	db := setupDB(t)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// No orders yet: revenue is zero, not an error
	revenue, err := orderRepo.TotalRevenue()
	assert.NoError(t, err)
	assert.Equal(t, 0.0, revenue)

	customer := &models.Customer{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, customerRepo.Create(customer))
	p1 := &models.Product{Name: "Laptop", Price: 1200, Stock: 5}
	p2 := &models.Product{Name: "Mouse", Price: 25.5, Stock: 50}
	require.NoError(t, productRepo.Create(p1))
	require.NoError(t, productRepo.Create(p2))

	order := &models.Order{
		CustomerID:  customer.ID,
		Products:    []models.Product{*p1, *p2},
		TotalAmount: p1.Price + p2.Price,
		OrderDate:   time.Now().AddDate(0, 0, -2),
	}
	require.NoError(t, orderRepo.Create(order))

	old := &models.Order{
		CustomerID:  customer.ID,
		Products:    []models.Product{*p1},
		TotalAmount: p1.Price,
		OrderDate:   time.Now().AddDate(0, 0, -30),
	}
	require.NoError(t, orderRepo.Create(old))

	// Associations and customer are preloaded
	fetched, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, fetched.Products, 2)
	assert.Equal(t, "alice@example.com", fetched.Customer.Email)
	assert.Equal(t, 1225.5, fetched.TotalAmount)

	// Date filter keeps only recent orders
	weekAgo := time.Now().AddDate(0, 0, -7)
	recent, err := orderRepo.GetAll(repositories.OrderFilter{OrderDateGte: &weekAgo}, nil)
	assert.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, order.ID, recent[0].ID)

	count, err := orderRepo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	revenue, err = orderRepo.TotalRevenue()
	assert.NoError(t, err)
	assert.InDelta(t, 2425.5, revenue, 0.001)
}
