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

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// orderFilterFromQuery builds the order filter from query parameters.
func orderFilterFromQuery(c *fiber.Ctx) (filters.OrderFilter, error) {
	f := filters.OrderFilter{
		CustomerName: c.Query("customer_name"),
		ProductName:  c.Query("product_name"),
		ProductID:    c.Query("product_id"),
	}
	var err error
	if f.TotalAmountGTE, err = queryDecimal(c, "total_amount_gte"); err != nil {
		return f, err
	}
	if f.TotalAmountLTE, err = queryDecimal(c, "total_amount_lte"); err != nil {
		return f, err
	}
	if f.OrderDateGTE, err = queryTime(c, "order_date_gte"); err != nil {
		return f, err
	}
	if f.OrderDateLTE, err = queryTime(c, "order_date_lte"); err != nil {
		return f, err
	}
	return f, nil
}

// HandleListOrders retrieves orders matching the query filters.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}

	orders, err := h.service.ListOrders(filter)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleCreateOrder creates an order from a customer ID and a set of product
// IDs. Referential failures come back in the envelope with a 422.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input services.OrderInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.CreateOrder(input)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
