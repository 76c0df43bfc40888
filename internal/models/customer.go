package models

import "time"

// Customer represents a CRM customer.
type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(255)" validate:"required,max=255"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(32)" validate:"omitempty,crmphone"`
	CreatedAt time.Time `json:"created_at"`
}
