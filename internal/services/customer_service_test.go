package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"crm/internal/filters"
	"crm/internal/models"
	"crm/internal/services"
)

// MockCustomerRepository is a mock implementation of repositories.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) List(filter filters.CustomerFilter) ([]models.Customer, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	input := services.CustomerInput{
		Name:  "John Smith",
		Email: "john@example.com",
		Phone: "+1-555-0100",
	}

	// Test successful creation
	mockRepo.On("ExistsByEmail", input.Email).Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Once()

	result, err := service.CreateCustomer(input)
	assert.NoError(t, err)
	assert.NotNil(t, result.Customer)
	assert.Equal(t, "Customer created successfully!", result.Message)
	assert.Equal(t, input.Email, result.Customer.Email)
	mockRepo.AssertExpectations(t)

	// Test duplicate email
	mockRepo.On("ExistsByEmail", input.Email).Return(true, nil).Once()
	result, err = service.CreateCustomer(input)
	assert.NoError(t, err)
	assert.Nil(t, result.Customer)
	assert.Equal(t, "Email already exists.", result.Message)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_CreateCustomer_PhoneFormat(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	invalidPhones := []string{
		"abc",                 // not numeric
		"+",                   // no digit
		"12",                  // too short
		"1234567890123456789", // too long
		"555 0100 123",        // spaces not allowed
	}

	for _, phone := range invalidPhones {
		mockRepo.On("ExistsByEmail", "jane@example.com").Return(false, nil).Once()
		result, err := service.CreateCustomer(services.CustomerInput{
			Name:  "Jane",
			Email: "jane@example.com",
			Phone: phone,
		})
		assert.NoError(t, err)
		assert.Nil(t, result.Customer, "phone %q should be rejected", phone)
		assert.Equal(t, "Invalid phone number format.", result.Message)
	}

	validPhones := []string{"+1-555-0100", "08123456789", "555-0100-42"}
	for _, phone := range validPhones {
		mockRepo.On("ExistsByEmail", "jane@example.com").Return(false, nil).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Once()
		result, err := service.CreateCustomer(services.CustomerInput{
			Name:  "Jane",
			Email: "jane@example.com",
			Phone: phone,
		})
		assert.NoError(t, err)
		assert.NotNil(t, result.Customer, "phone %q should be accepted", phone)
	}
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_CreateCustomer_NoPhoneIsAllowed(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	mockRepo.On("ExistsByEmail", "nophone@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Once()

	result, err := service.CreateCustomer(services.CustomerInput{
		Name:  "No Phone",
		Email: "nophone@example.com",
	})
	assert.NoError(t, err)
	assert.NotNil(t, result.Customer)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_CreateCustomer_RepositoryError(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	mockRepo.On("ExistsByEmail", "john@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(fmt.Errorf("database error")).Once()

	_, err := service.CreateCustomer(services.CustomerInput{
		Name:  "John",
		Email: "john@example.com",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_BulkCreateCustomers_PartialSuccess(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	inputs := []services.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "dup@example.com"},
		{Name: "Carol", Email: "carol@example.com"},
	}

	mockRepo.On("ExistsByEmail", "alice@example.com").Return(false, nil).Once()
	mockRepo.On("ExistsByEmail", "dup@example.com").Return(true, nil).Once()
	mockRepo.On("ExistsByEmail", "carol@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Twice()

	result := service.BulkCreateCustomers(inputs)

	assert.Len(t, result.Customers, 2)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "Customer at index 1 has duplicate email: dup@example.com", result.Errors[0])
	assert.Equal(t, "alice@example.com", result.Customers[0].Email)
	assert.Equal(t, "carol@example.com", result.Customers[1].Email)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_BulkCreateCustomers_InvalidPhone(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	mockRepo.On("ExistsByEmail", "bad@example.com").Return(false, nil).Once()

	result := service.BulkCreateCustomers([]services.CustomerInput{
		{Name: "Bad Phone", Email: "bad@example.com", Phone: "not-a-phone"},
	})

	assert.Empty(t, result.Customers)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "Customer at index 0 has invalid phone: not-a-phone", result.Errors[0])
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_BulkCreateCustomers_ContinuesPastRepositoryError(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	inputs := []services.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	}

	mockRepo.On("ExistsByEmail", "alice@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.MatchedBy(func(c *models.Customer) bool {
		return c.Email == "alice@example.com"
	})).Return(fmt.Errorf("disk full")).Once()
	mockRepo.On("ExistsByEmail", "bob@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.MatchedBy(func(c *models.Customer) bool {
		return c.Email == "bob@example.com"
	})).Return(nil).Once()

	result := service.BulkCreateCustomers(inputs)

	// The batch completes despite the failure at index 0.
	assert.Len(t, result.Customers, 1)
	assert.Equal(t, "bob@example.com", result.Customers[0].Email)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Customer at index 0 error:")
	assert.Contains(t, result.Errors[0], "disk full")
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_BulkCreateCustomers_EmptyInput(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo, nil)

	result := service.BulkCreateCustomers(nil)

	assert.Empty(t, result.Customers)
	assert.Empty(t, result.Errors)
	mockRepo.AssertExpectations(t)
}
