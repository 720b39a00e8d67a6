package filters

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"crm/internal/models"
)

// ProductFilter holds the supported product query parameters.
type ProductFilter struct {
	Name     string // case-insensitive substring match
	PriceGTE *decimal.Decimal
	PriceLTE *decimal.Decimal
	StockGTE *int
	StockLTE *int
}

// Match reports whether the product satisfies every set parameter.
func (f ProductFilter) Match(p models.Product) bool {
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false
	}
	if f.PriceGTE != nil && p.Price.LessThan(*f.PriceGTE) {
		return false
	}
	if f.PriceLTE != nil && p.Price.GreaterThan(*f.PriceLTE) {
		return false
	}
	if f.StockGTE != nil && p.Stock < *f.StockGTE {
		return false
	}
	if f.StockLTE != nil && p.Stock > *f.StockLTE {
		return false
	}
	return true
}

// Scope returns the equivalent GORM query restriction.
func (f ProductFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Name != "" {
			db = db.Where("LOWER(products.name) LIKE ?", likeContains(f.Name))
		}
		if f.PriceGTE != nil {
			db = db.Where("products.price >= ?", *f.PriceGTE)
		}
		if f.PriceLTE != nil {
			db = db.Where("products.price <= ?", *f.PriceLTE)
		}
		if f.StockGTE != nil {
			db = db.Where("products.stock >= ?", *f.StockGTE)
		}
		if f.StockLTE != nil {
			db = db.Where("products.stock <= ?", *f.StockLTE)
		}
		return db
	}
}
