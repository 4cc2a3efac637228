package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/repository"
)

type CategoryService interface {
	GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error)

	// ListCategories returns every category with its non-deleted product count.
	ListCategories(ctx context.Context) ([]model.CategorySummary, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Category{}, apperr.CategoryNotFoundErr
		}
		return model.Category{}, fmt.Errorf("category repository get category: %w", err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.CategorySummary, error) {
	summaries, err := s.categoryRepo.ListCategorySummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list category summaries: %w", err)
	}

	return summaries, nil
}
