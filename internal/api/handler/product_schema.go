package handler

import "github.com/apiecommerce/catalog-api/internal/core/domain"

// Request/response types for the product endpoints. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type productRequest struct {
	Name        string  `json:"name"         validate:"required,min=2"`
	Description string  `json:"description"  validate:"required"`
	Price       float64 `json:"price"        validate:"required,gt=0"`
	SKU         string  `json:"sku"          validate:"required,min=3"`
	Stock       int     `json:"stock"        validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty"`
	CategoryID  string  `json:"category_id"  validate:"required"`
}

type buyProductRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProductsResponse struct {
	Data       []*domain.Product  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
