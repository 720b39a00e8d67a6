package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"crm/internal/filters"
	"crm/internal/models"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[string]models.Customer
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// Create adds a new customer.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

// GetByID returns a customer by its ID.
func (r *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer with ID %s: %w", id, ErrNotFound)
	}
	return &customer, nil
}

// ExistsByEmail reports whether a customer with the given email already exists.
func (r *MockCustomerRepository) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// List returns the customers matching the filter.
func (r *MockCustomerRepository) List(filter filters.CustomerFilter) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if filter.Match(c) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
