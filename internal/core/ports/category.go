package ports

import (
	"context"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
)

// CategoryInput carries the data for creating or updating a category.
type CategoryInput struct {
	Name string
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
