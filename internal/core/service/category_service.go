package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, caller *domain.User, name string) (*domain.Category, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(domain.ErrInvalid, "category_name is required")
	}

	category := &domain.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("category_id", category.ID).Str("name", name).Msg("category created")
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
