package ports

import (
	"context"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
)

// ProductInput carries the data for creating or updating a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	SKU         string
	Stock       int
	ImageURL    string
	CategoryID  string
}

// ListProductsFilter carries query parameters for the product list endpoint.
type ListProductsFilter struct {
	CategoryID string // optional: scope to one category
	Search     string // optional: partial match on product name
	Page       int    // 1-based
	Limit      int    // capped by the service
}

// ListProductsResult is a page of products plus pagination metadata.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementStock atomically subtracts quantity when enough stock remains,
	// reporting domain.ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id string, quantity int) error
}

// ProductService defines use-case operations for products.
type ProductService interface {
	ListProducts(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	BuyProduct(ctx context.Context, id string, quantity int) (*domain.Product, error)
}
