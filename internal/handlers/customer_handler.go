package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"crm/internal/filters"
	"crm/internal/repositories"
	"crm/internal/services"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleListCustomers)
	customerRoutes.Get("/:id", h.HandleGetCustomerByID)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Post("/bulk", h.HandleBulkCreateCustomers)
}

// customerFilterFromQuery builds the customer filter from query parameters.
func customerFilterFromQuery(c *fiber.Ctx) (filters.CustomerFilter, error) {
	f := filters.CustomerFilter{
		Name:            c.Query("name"),
		Email:           c.Query("email"),
		PhoneStartsWith: c.Query("phone_startswith"),
	}
	var err error
	if f.CreatedAtGTE, err = queryTime(c, "created_at_gte"); err != nil {
		return f, err
	}
	if f.CreatedAtLTE, err = queryTime(c, "created_at_lte"); err != nil {
		return f, err
	}
	return f, nil
}

// HandleListCustomers retrieves customers matching the query filters.
func (h *CustomerHandler) HandleListCustomers(c *fiber.Ctx) error {
	filter, err := customerFilterFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}

	customers, err := h.service.ListCustomers(filter)
	if err != nil {
		log.Printf("Error listing customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customers",
			"error":   err.Error(),
		})
	}
	return c.JSON(customers)
}

// HandleGetCustomerByID retrieves a single customer by its ID.
func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	customerID := c.Params("id")
	customer, err := h.service.GetCustomerByID(customerID)
	if err != nil {
		log.Printf("Error getting customer by ID %s: %v", customerID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Customer with ID %s not found", customerID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}

// HandleCreateCustomer creates a single customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var input services.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create customer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.CreateCustomer(input)
	if err != nil {
		log.Printf("Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}

	if result.Customer == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// BulkCreateCustomersRequest is the request body for the bulk endpoint.
type BulkCreateCustomersRequest struct {
	Customers []services.CustomerInput `json:"customers" validate:"required,min=1,dive"`
}

// HandleBulkCreateCustomers creates a batch of customers. The batch always
// completes; the response carries the created customers and the per-item
// error messages side by side.
func (h *CustomerHandler) HandleBulkCreateCustomers(c *fiber.Ctx) error {
	var req BulkCreateCustomersRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bulk create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	result := h.service.BulkCreateCustomers(req.Customers)
	return c.JSON(result)
}

// validationFailed builds the 400 response for struct validation errors.
func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
