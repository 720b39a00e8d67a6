package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/filters"
	"crm/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates a new order in the database. GORM persists the order row and
// the order_products join rows in one transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	// Omit the associated entities themselves; only the join rows are new.
	if err := r.db.Omit("Products.*", "Customer").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its associations from the database.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").Preload("Products").First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// List retrieves the orders matching the filter from the database.
func (r *GORMOrderRepository) List(filter filters.OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Model(&models.Order{}).
		Scopes(filter.Scope()).
		Preload("Customer").
		Preload("Products").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
