package handlers

import (
	"log"
	"time"

	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the read-only administrative customer listing.
type AdminHandler struct {
	customerService *services.CustomerService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(customerService *services.CustomerService) *AdminHandler {
	return &AdminHandler{
		customerService: customerService,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/customers", h.HandleListCustomers)
}

// customerRow is one row of the admin listing.
type customerRow struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleListCustomers lists customers with an optional search term
// (matched against name and email) and an optional created-date range,
// both pushed down into the repository query. Date params accept RFC 3339
// or a plain YYYY-MM-DD.
func (h *AdminHandler) HandleListCustomers(c *fiber.Ctx) error {
	createdFrom, err := parseDateParam(c.Query("createdFrom"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid createdFrom date",
			"error":   err.Error(),
		})
	}
	createdTo, err := parseDateParam(c.Query("createdTo"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid createdTo date",
			"error":   err.Error(),
		})
	}

	filter := repositories.CustomerFilter{
		Search:      c.Query("search"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	customers, err := h.customerService.ListCustomers(filter, repositories.OrderBy{"created_at"})
	if err != nil {
		log.Printf("Error listing customers for admin view: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customers",
			"error":   err.Error(),
		})
	}

	rows := make([]customerRow, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, customerRow{
			Name:      customer.Name,
			Email:     customer.Email,
			CreatedAt: customer.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"customers": rows,
		"count":     len(rows),
	})
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
