package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"crm/internal/filters"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/pkg/rabbitmq"
)

// OrderInput carries the fields for creating an order.
type OrderInput struct {
	CustomerID string     `json:"customer_id" validate:"required"`
	ProductIDs []string   `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

// CreateOrderResult is the envelope returned by CreateOrder.
type CreateOrderResult struct {
	Order   *models.Order `json:"order"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	mqClient     *rabbitmq.Client
}

// NewOrderService creates a new OrderService. The RabbitMQ client may be nil,
// in which case event publication is skipped.
func NewOrderService(orderRepo repositories.OrderRepository, customerRepo repositories.CustomerRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		mqClient:     mqClient,
	}
}

// ListOrders retrieves the orders matching the filter.
func (s *OrderService) ListOrders(filter filters.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder validates the customer and product references, computes the
// total as the sum of the referenced products' prices at this moment, and
// persists the order. Referential failures are reported in the result
// envelope; a non-nil error means an unexpected repository failure.
func (s *OrderService) CreateOrder(input OrderInput) (CreateOrderResult, error) {
	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		// Only a missing customer is a validation failure; anything else is
		// an unexpected repository fault and must not masquerade as one.
		if errors.Is(err, repositories.ErrNotFound) {
			return CreateOrderResult{Error: "Invalid customer ID."}, nil
		}
		return CreateOrderResult{}, fmt.Errorf("failed to look up customer %s: %w", input.CustomerID, err)
	}

	if len(input.ProductIDs) == 0 {
		return CreateOrderResult{Error: "At least one product must be selected."}, nil
	}

	products, err := s.productRepo.GetByIDs(input.ProductIDs)
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to resolve products: %w", err)
	}
	// A count mismatch means at least one requested ID did not resolve.
	if len(products) != len(input.ProductIDs) {
		return CreateOrderResult{Error: "One or more product IDs are invalid."}, nil
	}

	totalAmount := decimal.Zero
	for _, p := range products {
		totalAmount = totalAmount.Add(p.Price)
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		Customer:    *customer,
		Products:    products,
		OrderDate:   orderDate,
		TotalAmount: totalAmount,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrderCreated(order)

	return CreateOrderResult{
		Order:   order,
		Success: true,
	}, nil
}

// publishOrderCreated publishes an order.created event. Publication is
// best-effort; failures are logged and do not affect the mutation result.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"orderID":    order.ID,
		"customerID": order.CustomerID,
		"total":      order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.mqClient.Publish("order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}
