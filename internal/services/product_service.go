package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"crm/internal/filters"
	"crm/internal/models"
	"crm/internal/repositories"
)

// ProductInput carries the fields for creating a product.
type ProductInput struct {
	Name  string          `json:"name" validate:"required,min=1,max=100"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CreateProductResult is the envelope returned by CreateProduct.
type CreateProductResult struct {
	Product *models.Product `json:"product"`
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves the products matching the filter.
func (s *ProductService) ListProducts(filter filters.ProductFilter) ([]models.Product, error) {
	return s.repo.List(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and creates a product. Constraint violations are
// reported in the result envelope; a non-nil error means an unexpected
// repository failure.
func (s *ProductService) CreateProduct(input ProductInput) (CreateProductResult, error) {
	if input.Price.Sign() <= 0 {
		return CreateProductResult{Error: "Price must be positive."}, nil
	}
	if input.Stock < 0 {
		return CreateProductResult{Error: "Stock cannot be negative."}, nil
	}

	product := &models.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	}
	if err := s.repo.Create(product); err != nil {
		return CreateProductResult{}, fmt.Errorf("failed to create product: %w", err)
	}

	return CreateProductResult{
		Product: product,
		Success: true,
	}, nil
}
