package repositories

import (
	"crm/internal/filters"
	"crm/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order together with its product associations.
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// List returns matching orders with Customer and Products loaded.
	List(filter filters.OrderFilter) ([]models.Order, error)
}
