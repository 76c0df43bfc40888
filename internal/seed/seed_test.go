package seed_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"testing"

	"crm/internal/models"
	"crm/internal/seed"

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

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSeeder_Run(t *testing.T) {
	db := setupDB(t)
	seeder := seed.NewSeeder(db, 10, 20)
	require.NoError(t, seeder.Run())

	var customerCount, productCount, orderCount int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customerCount).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(10), customerCount)
	assert.Equal(t, int64(15), productCount)
	assert.Equal(t, int64(20), orderCount)

	phonePattern := regexp.MustCompile(`^(\+\d{1,15}|\d{3}-\d{3}-\d{4})$`)
	var customers []models.Customer
	require.NoError(t, db.Find(&customers).Error)
	for _, c := range customers {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Email)
		if c.Phone != "" {
			assert.Regexp(t, phonePattern, c.Phone)
		}
	}

	var orders []models.Order
	require.NoError(t, db.Preload("Products").Find(&orders).Error)
	for _, o := range orders {
		require.NotEmpty(t, o.Products)
		assert.LessOrEqual(t, len(o.Products), 5)
		var total float64
		for _, p := range o.Products {
			total += p.Price
		}
		assert.InDelta(t, total, o.TotalAmount, 0.001)
		assert.NotEmpty(t, o.CustomerID)
	}
}

func TestSeeder_RunResetsExistingData(t *testing.T) {
	db := setupDB(t)

	seeder := seed.NewSeeder(db, 5, 8)
	require.NoError(t, seeder.Run())
	require.NoError(t, seeder.Run())

	var customerCount, productCount, orderCount int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customerCount).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(5), customerCount)
	assert.Equal(t, int64(15), productCount)
	assert.Equal(t, int64(8), orderCount)

	var linkCount int64
	require.NoError(t, db.Table("order_products").Count(&linkCount).Error)
	var orders []models.Order
	require.NoError(t, db.Preload("Products").Find(&orders).Error)
	var expectedLinks int64
	for _, o := range orders {
		expectedLinks += int64(len(o.Products))
	}
	assert.Equal(t, expectedLinks, linkCount)
}
