package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"crm/internal/database"
	"crm/internal/gql"
	"crm/internal/handlers"
	"crm/internal/middleware"
	"crm/internal/repositories"
	"crm/internal/services"
	"crm/pkg/rabbitmq"

	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8000")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "crm.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := database.Open(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Event publisher (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		if err := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			log.Printf("Received %s event: %s", msg.RoutingKey, msg.Body)
			return nil
		}); err != nil {
			log.Fatalf("Failed to start event consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set; event publishing disabled")
	}

	// --- Repositories ---
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	customerService := services.NewCustomerService(customerRepo, mqClient)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, mqClient)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- GraphQL schema ---
	schema, err := gql.NewSchema(&gql.Resolver{
		Customers: customerService,
		Products:  productService,
		Orders:    orderService,
	})
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	// --- Handlers ---
	graphqlHandler := handlers.NewGraphQLHandler(schema)
	adminHandler := handlers.NewAdminHandler(customerService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	// The GraphQL API lives at a single path.
	graphqlHandler.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	adminHandler.RegisterRoutes(protectedRoutes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting CRM server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
