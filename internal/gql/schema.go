// Package gql defines the GraphQL schema exposed at the /graphql endpoint:
// filtered list queries, derived aggregates and the validated CRUD
// mutations over the CRM services.
package gql

import (
	"time"

	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/graphql-go/graphql"
)

// Resolver bundles the services the schema delegates to.
type Resolver struct {
	Customers *services.CustomerService
	Products  *services.ProductService
	Orders    *services.OrderService
}

// NewSchema builds the executable schema around the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(),
		Mutation: r.mutationType(),
	})
}

func (r *Resolver) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello from GraphQL!", nil
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Args: graphql.FieldConfigArgument{
					"name":           &graphql.ArgumentConfig{Type: graphql.String},
					"email":          &graphql.ArgumentConfig{Type: graphql.String},
					"nameIcontains":  &graphql.ArgumentConfig{Type: graphql.String},
					"emailIcontains": &graphql.ArgumentConfig{Type: graphql.String},
					"phoneIcontains": &graphql.ArgumentConfig{Type: graphql.String},
					"orderBy":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.CustomerFilter{
						Name:           argString(p, "name"),
						Email:          argString(p, "email"),
						NameIcontains:  argString(p, "nameIcontains"),
						EmailIcontains: argString(p, "emailIcontains"),
						PhoneIcontains: argString(p, "phoneIcontains"),
					}
					return r.Customers.ListCustomers(filter, argOrderBy(p))
				},
			},
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Customers.GetCustomerByID(argString(p, "id"))
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Products.ListProducts(argOrderBy(p))
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Products.GetProductByID(argString(p, "id"))
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"orderDateGte": &graphql.ArgumentConfig{Type: graphql.DateTime},
					"orderBy":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var filter repositories.OrderFilter
					if raw, ok := p.Args["orderDateGte"]; ok {
						if t, ok := raw.(time.Time); ok {
							filter.OrderDateGte = &t
						}
					}
					return r.Orders.ListOrders(filter, argOrderBy(p))
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.GetOrderByID(argString(p, "id"))
				},
			},
			"totalCustomers": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Customers.TotalCustomers()
				},
			},
			"totalOrders": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.TotalOrders()
				},
			},
			"totalRevenue": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.TotalRevenue()
				},
			},
		},
	})
}

func (r *Resolver) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := customerInputFromArg(p.Args["input"])
					return r.Customers.CreateCustomer(input), nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersPayload,
				Args: graphql.FieldConfigArgument{
					"inputs": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(customerInputType))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["inputs"].([]interface{})
					inputs := make([]services.CustomerInput, 0, len(raw))
					for _, item := range raw {
						inputs = append(inputs, customerInputFromArg(item))
					}
					return r.Customers.BulkCreateCustomers(inputs), nil
				},
			},
			"createProduct": &graphql.Field{
				Type: createProductPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					fields, _ := p.Args["input"].(map[string]interface{})
					input := services.ProductInput{
						Name:  mapString(fields, "name"),
						Price: mapFloat(fields, "price"),
					}
					if raw, ok := fields["stock"]; ok {
						if stock, ok := raw.(int); ok {
							input.Stock = &stock
						}
					}
					return r.Products.CreateProduct(input), nil
				},
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					fields, _ := p.Args["input"].(map[string]interface{})
					input := services.OrderInput{
						CustomerID: mapString(fields, "customerId"),
					}
					if raw, ok := fields["productIds"].([]interface{}); ok {
						for _, id := range raw {
							if s, ok := id.(string); ok {
								input.ProductIDs = append(input.ProductIDs, s)
							}
						}
					}
					if raw, ok := fields["orderDate"]; ok {
						if t, ok := raw.(time.Time); ok {
							input.OrderDate = &t
						}
					}
					return r.Orders.CreateOrder(input), nil
				},
			},
			"updateLowStockProducts": &graphql.Field{
				Type: updateLowStockPayload,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Products.UpdateLowStockProducts(), nil
				},
			},
		},
	})
}

func customerInputFromArg(arg interface{}) services.CustomerInput {
	fields, _ := arg.(map[string]interface{})
	return services.CustomerInput{
		Name:  mapString(fields, "name"),
		Email: mapString(fields, "email"),
		Phone: mapString(fields, "phone"),
	}
}

func argString(p graphql.ResolveParams, name string) string {
	if s, ok := p.Args[name].(string); ok {
		return s
	}
	return ""
}

func argOrderBy(p graphql.ResolveParams) repositories.OrderBy {
	raw, ok := p.Args["orderBy"].([]interface{})
	if !ok {
		return nil
	}
	orderBy := make(repositories.OrderBy, 0, len(raw))
	for _, field := range raw {
		if s, ok := field.(string); ok {
			orderBy = append(orderBy, s)
		}
	}
	return orderBy
}

func mapString(fields map[string]interface{}, name string) string {
	if s, ok := fields[name].(string); ok {
		return s
	}
	return ""
}

func mapFloat(fields map[string]interface{}, name string) float64 {
	switch v := fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
