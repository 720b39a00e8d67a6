package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order referencing one or more products.
// TotalAmount is the sum of the referenced products' prices at creation time;
// it is never recomputed when product prices change later.
type Order struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerID  string          `json:"customer_id" gorm:"type:varchar(36);index"`
	Customer    Customer        `json:"customer"`
	Products    []Product       `json:"products" gorm:"many2many:order_products"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
