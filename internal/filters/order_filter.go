package filters

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"crm/internal/models"
)

// OrderFilter holds the supported order query parameters. CustomerName,
// ProductName, and ProductID reach through the order's relations; the SQL
// side needs a DISTINCT because the product join can repeat an order row.
type OrderFilter struct {
	TotalAmountGTE *decimal.Decimal
	TotalAmountLTE *decimal.Decimal
	OrderDateGTE   *time.Time
	OrderDateLTE   *time.Time
	CustomerName   string // case-insensitive substring match on the linked customer's name
	ProductName    string // case-insensitive substring match on any linked product's name
	ProductID      string // exact match on any linked product's id
}

// Match reports whether the order satisfies every set parameter. The order
// must carry its Customer and Products associations. Evaluating per order
// means each order appears at most once, so no explicit dedup is needed here.
func (f OrderFilter) Match(o models.Order) bool {
	if f.TotalAmountGTE != nil && o.TotalAmount.LessThan(*f.TotalAmountGTE) {
		return false
	}
	if f.TotalAmountLTE != nil && o.TotalAmount.GreaterThan(*f.TotalAmountLTE) {
		return false
	}
	if f.OrderDateGTE != nil && o.OrderDate.Before(*f.OrderDateGTE) {
		return false
	}
	if f.OrderDateLTE != nil && o.OrderDate.After(*f.OrderDateLTE) {
		return false
	}
	if f.CustomerName != "" && !containsFold(o.Customer.Name, f.CustomerName) {
		return false
	}
	if f.ProductName != "" && !anyProduct(o.Products, func(p models.Product) bool {
		return containsFold(p.Name, f.ProductName)
	}) {
		return false
	}
	if f.ProductID != "" && !anyProduct(o.Products, func(p models.Product) bool {
		return p.ID == f.ProductID
	}) {
		return false
	}
	return true
}

func anyProduct(products []models.Product, pred func(models.Product) bool) bool {
	for _, p := range products {
		if pred(p) {
			return true
		}
	}
	return false
}

// Scope returns the equivalent GORM query restriction, joining the customer
// and product tables only when a relation filter is set.
func (f OrderFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.TotalAmountGTE != nil {
			db = db.Where("orders.total_amount >= ?", *f.TotalAmountGTE)
		}
		if f.TotalAmountLTE != nil {
			db = db.Where("orders.total_amount <= ?", *f.TotalAmountLTE)
		}
		if f.OrderDateGTE != nil {
			db = db.Where("orders.order_date >= ?", *f.OrderDateGTE)
		}
		if f.OrderDateLTE != nil {
			db = db.Where("orders.order_date <= ?", *f.OrderDateLTE)
		}
		if f.CustomerName != "" {
			db = db.Joins("JOIN customers ON customers.id = orders.customer_id").
				Where("LOWER(customers.name) LIKE ?", likeContains(f.CustomerName))
		}
		if f.ProductName != "" || f.ProductID != "" {
			db = db.Joins("JOIN order_products ON order_products.order_id = orders.id").
				Joins("JOIN products ON products.id = order_products.product_id")
			if f.ProductName != "" {
				db = db.Where("LOWER(products.name) LIKE ?", likeContains(f.ProductName))
			}
			if f.ProductID != "" {
				db = db.Where("products.id = ?", f.ProductID)
			}
			// The join can produce one row per matching product.
			db = db.Distinct("orders.*")
		}
		return db
	}
}
