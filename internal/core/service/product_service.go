package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ProductService struct {
	repo       ports.ProductRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, categories ports.CategoryRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, categories: categories, logger: logger}
}

func (s *ProductService) ListProducts(ctx context.Context, filter ports.ListProductsFilter) (*ports.ListProductsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySKU(ctx, input.SKU)
	if err != nil {
		return nil, fmt.Errorf("sku check: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		SKU:         input.SKU,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sku", created.SKU).Str("category_id", created.CategoryID).Msg("product created")
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != product.CategoryID {
		if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.SKU != product.SKU {
		exists, err := s.repo.ExistsBySKU(ctx, input.SKU)
		if err != nil {
			return nil, fmt.Errorf("sku check: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateSKU
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.SKU = input.SKU
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	product.CategoryID = input.CategoryID
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// BuyProduct decrements stock atomically at the store layer so concurrent
// purchases cannot oversell.
func (s *ProductService) BuyProduct(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		quantity = 1
	}

	if err := s.repo.DecrementStock(ctx, id, quantity); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}
