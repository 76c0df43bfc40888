package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// GraphQLRequest is the standard POST body: {"query": "...", ...}.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler serves the single GraphQL endpoint.
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQLHandler.
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
	}
}

// RegisterRoutes registers the GraphQL route with the Fiber app.
func (h *GraphQLHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/graphql", h.HandleQuery)
}

// HandleQuery executes the posted GraphQL document and returns the result.
// Execution errors (bad queries, unknown fields) come back in the standard
// "errors" member with HTTP 200; only an unreadable body is a 400.
func (h *GraphQLHandler) HandleQuery(c *fiber.Ctx) error {
	var req GraphQLRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing GraphQL request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A query document is required",
		})
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Context(),
	})
	return c.JSON(result)
}
