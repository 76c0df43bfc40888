package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"crm/internal/gql"
	"crm/internal/handlers"
	"crm/internal/middleware"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds the full Fiber app over an in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}, &models.User{}))

	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	customerService := services.NewCustomerService(customerRepo, nil)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, nil)
	authService := services.NewAuthService(userRepo, jwtSecret)

	schema, err := gql.NewSchema(&gql.Resolver{
		Customers: customerService,
		Products:  productService,
		Orders:    orderService,
	})
	require.NoError(t, err)

	app := fiber.New()

	handlers.NewGraphQLHandler(schema).RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewAdminHandler(customerService).RegisterRoutes(protected)

	return app, db
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func postGraphQL(t *testing.T, app *fiber.App, query string) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

func TestGraphQLEndpoint_CreateAndQueryCustomers(t *testing.T) {
	app, _ := setupApp(t)

	parsed := postGraphQL(t, app, `mutation {
		createCustomer(input: {name: "Alice", email: "alice@example.com", phone: "123-456-7890"}) {
			success
			message
		}
	}`)
	data := parsed["data"].(map[string]interface{})
	payload := data["createCustomer"].(map[string]interface{})
	assert.Equal(t, true, payload["success"])

	parsed = postGraphQL(t, app, `query { customers { name email phone } }`)
	data = parsed["data"].(map[string]interface{})
	customers := data["customers"].([]interface{})
	require.Len(t, customers, 1)
	customer := customers[0].(map[string]interface{})
	assert.Equal(t, "Alice", customer["name"])
	assert.Equal(t, "123-456-7890", customer["phone"])
}

func TestGraphQLEndpoint_LowStockMutation(t *testing.T) {
	app, db := setupApp(t)

	productRepo := repositories.NewGORMProductRepository(db)
	require.NoError(t, productRepo.Create(&models.Product{Name: "Keyboard", Price: 75, Stock: 3}))

	parsed := postGraphQL(t, app, `mutation {
		updateLowStockProducts { success message updatedProducts }
	}`)
	data := parsed["data"].(map[string]interface{})
	payload := data["updateLowStockProducts"].(map[string]interface{})
	assert.Equal(t, true, payload["success"])
	updated := payload["updatedProducts"].([]interface{})
	require.Len(t, updated, 1)
	assert.Equal(t, "Keyboard: 3 -> 13", updated[0])
}

func TestGraphQLEndpoint_BadQueryReturnsErrors(t *testing.T) {
	app, _ := setupApp(t)

	parsed := postGraphQL(t, app, `query { noSuchField }`)
	assert.NotEmpty(t, parsed["errors"])
}

func TestGraphQLEndpoint_EmptyBodyRejected(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	user := map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "password123",
	}
	body, _ := json.Marshal(user)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	creds := map[string]string{"username": "admin", "password": "password123"}
	body, _ = json.Marshal(creds)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()
	require.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func TestAdminCustomerListing(t *testing.T) {
	app, db := setupApp(t)

	customerRepo := repositories.NewGORMCustomerRepository(db)
	require.NoError(t, customerRepo.Create(&models.Customer{Name: "Alice Smith", Email: "alice@example.com"}))
	require.NoError(t, customerRepo.Create(&models.Customer{Name: "Bob Jones", Email: "bob@sample.org"}))

	// Unauthenticated requests are rejected
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/customers", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := registerAndLogin(t, app)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/customers?search=smith", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Customers []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"customers"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	assert.Equal(t, 1, listing.Count)
	require.Len(t, listing.Customers, 1)
	assert.Equal(t, "Alice Smith", listing.Customers[0].Name)

	// A created range in the future matches nothing
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/customers?createdFrom="+tomorrow, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	assert.Equal(t, 0, listing.Count)
}
