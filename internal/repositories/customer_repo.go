package repositories

import (
	"crm/internal/filters"
	"crm/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	ExistsByEmail(email string) (bool, error)
	List(filter filters.CustomerFilter) ([]models.Customer, error)
}
