package services

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"

	"crm/internal/filters"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/pkg/rabbitmq"
)

// phonePattern is the single phone format rule shared by the single and bulk
// customer mutations: optional leading +, a digit, then 7-15 digits or dashes.
var phonePattern = regexp.MustCompile(`^\+?\d[\d\-]{7,15}$`)

// CustomerInput carries the fields for creating one customer.
type CustomerInput struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

// CreateCustomerResult is the envelope returned by CreateCustomer. Customer is
// nil when validation fails; Message always carries a human-readable outcome.
type CreateCustomerResult struct {
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message"`
}

// BulkCreateCustomersResult is the envelope returned by BulkCreateCustomers.
// The same call can produce both created customers and error messages.
type BulkCreateCustomersResult struct {
	Customers []models.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	mqClient *rabbitmq.Client
}

// NewCustomerService creates a new CustomerService. The RabbitMQ client may be
// nil, in which case event publication is skipped.
func NewCustomerService(repo repositories.CustomerRepository, mqClient *rabbitmq.Client) *CustomerService {
	return &CustomerService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListCustomers retrieves the customers matching the filter.
func (s *CustomerService) ListCustomers(filter filters.CustomerFilter) ([]models.Customer, error) {
	return s.repo.List(filter)
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id string) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// CreateCustomer validates and creates a single customer. Validation failures
// are reported in the result envelope, never as an error; a non-nil error
// means an unexpected repository failure.
func (s *CustomerService) CreateCustomer(input CustomerInput) (CreateCustomerResult, error) {
	exists, err := s.repo.ExistsByEmail(input.Email)
	if err != nil {
		return CreateCustomerResult{}, fmt.Errorf("failed to check customer email: %w", err)
	}
	if exists {
		return CreateCustomerResult{Message: "Email already exists."}, nil
	}

	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return CreateCustomerResult{Message: "Invalid phone number format."}, nil
	}

	customer := &models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.repo.Create(customer); err != nil {
		return CreateCustomerResult{}, fmt.Errorf("failed to create customer: %w", err)
	}

	s.publishCustomerCreated(customer)

	return CreateCustomerResult{
		Customer: customer,
		Message:  "Customer created successfully!",
	}, nil
}

// BulkCreateCustomers processes each input independently and continues past
// failures. Unexpected per-item errors are recorded as messages so the batch
// as a whole always completes.
func (s *CustomerService) BulkCreateCustomers(inputs []CustomerInput) BulkCreateCustomersResult {
	result := BulkCreateCustomersResult{
		Customers: []models.Customer{},
		Errors:    []string{},
	}

	for index, input := range inputs {
		exists, err := s.repo.ExistsByEmail(input.Email)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer at index %d error: %s", index, err.Error()))
			continue
		}
		if exists {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer at index %d has duplicate email: %s", index, input.Email))
			continue
		}

		if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer at index %d has invalid phone: %s", index, input.Phone))
			continue
		}

		customer := models.Customer{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		}
		if err := s.repo.Create(&customer); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer at index %d error: %s", index, err.Error()))
			continue
		}

		s.publishCustomerCreated(&customer)
		result.Customers = append(result.Customers, customer)
	}

	return result
}

// publishCustomerCreated publishes a customer.created event. Publication is
// best-effort; failures are logged and do not affect the mutation result.
func (s *CustomerService) publishCustomerCreated(customer *models.Customer) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"customerID": customer.ID,
		"email":      customer.Email,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal customer event: %v", err)
		return
	}
	if err := s.mqClient.Publish("customer.created", body); err != nil {
		log.Printf("Warning: Failed to publish customer created event for customer %s: %v", customer.ID, err)
	}
}
