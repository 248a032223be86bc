package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	exists, err := s.repo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("category name check: %w", err)
	}
	if exists {
		return nil, domain.ErrCategoryExists
	}

	created, err := s.repo.Create(ctx, &domain.Category{
		Name:      input.Name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input ports.CategoryInput) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != category.Name {
		exists, err := s.repo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, fmt.Errorf("category name check: %w", err)
		}
		if exists {
			return nil, domain.ErrCategoryExists
		}
	}

	category.Name = input.Name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
