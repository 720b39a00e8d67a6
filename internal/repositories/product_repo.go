package repositories

import (
	"crm/internal/filters"
	"crm/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	// GetByIDs resolves a set of product IDs. Unknown IDs are simply absent
	// from the result; callers compare cardinality to detect them.
	GetByIDs(ids []string) ([]models.Product, error)
	List(filter filters.ProductFilter) ([]models.Product, error)
}
