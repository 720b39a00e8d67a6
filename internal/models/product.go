package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Price is a decimal so order totals sum exactly.
type Product struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string          `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
