package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(255)" validate:"required,max=255"`
	Price     float64   `json:"price" validate:"required,gt=0"`
	Stock     int       `json:"stock" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
}

// LowStockThreshold is the stock level below which a product becomes
// eligible for automatic restock.
const LowStockThreshold = 10

// RestockIncrement is the fixed amount added to a low-stock product's stock.
const RestockIncrement = 10
