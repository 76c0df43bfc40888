package gql

import (
	"github.com/graphql-go/graphql"
)

// Object types mirror the models; the default resolver matches camelCase
// field names against the struct fields.

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone":     &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"customer":    &graphql.Field{Type: customerType},
		"products":    &graphql.Field{Type: graphql.NewList(productType)},
		"totalAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"orderDate":   &graphql.Field{Type: graphql.DateTime},
	},
})

var customerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var orderInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
		"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

var createCustomerPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateCustomerPayload",
	Fields: graphql.Fields{
		"customer": &graphql.Field{Type: customerType},
		"message":  &graphql.Field{Type: graphql.String},
		"success":  &graphql.Field{Type: graphql.Boolean},
	},
})

var bulkCreateCustomersPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "BulkCreateCustomersPayload",
	Fields: graphql.Fields{
		"customers":    &graphql.Field{Type: graphql.NewList(customerType)},
		"errors":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		"successCount": &graphql.Field{Type: graphql.Int},
		"errorCount":   &graphql.Field{Type: graphql.Int},
	},
})

var createProductPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateProductPayload",
	Fields: graphql.Fields{
		"product": &graphql.Field{Type: productType},
		"message": &graphql.Field{Type: graphql.String},
		"success": &graphql.Field{Type: graphql.Boolean},
	},
})

var createOrderPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateOrderPayload",
	Fields: graphql.Fields{
		"order":   &graphql.Field{Type: orderType},
		"message": &graphql.Field{Type: graphql.String},
		"success": &graphql.Field{Type: graphql.Boolean},
	},
})

var updateLowStockPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdateLowStockProductsPayload",
	Fields: graphql.Fields{
		"success":         &graphql.Field{Type: graphql.Boolean},
		"message":         &graphql.Field{Type: graphql.String},
		"updatedProducts": &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})
