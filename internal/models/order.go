package models

import "time"

// Order represents a customer order. TotalAmount is derived from the
// referenced products' prices at creation time and is never set directly.
type Order struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID  string    `json:"customer_id" gorm:"type:varchar(36);index"`
	Customer    Customer  `json:"customer" gorm:"foreignKey:CustomerID"`
	Products    []Product `json:"products" gorm:"many2many:order_products"`
	TotalAmount float64   `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
}
