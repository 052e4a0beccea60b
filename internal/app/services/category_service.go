package services

import (
	"context"
	"errors"
	"strings"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/repositories"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

// CategoryService handles course categories.
type CategoryService interface {
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	categories *repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories *repositories.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

// CreateCategory creates a category with a unique name
func (s *categoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, apperrors.ErrValidationFailed
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	return category, nil
}

// GetCategory returns the category with the given ID
func (s *categoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, storageFailure(err)
	}
	return category, nil
}

// GetAllCategories returns every category ordered by name
func (s *categoryService) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return categories, nil
}

// UpdateCategory updates a category's name and image
func (s *categoryService) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if _, err := s.GetCategory(ctx, category.ID); err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, apperrors.ErrValidationFailed
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	return category, nil
}

// DeleteCategory removes a category. Courses in the category keep existing
// with their category cleared.
func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return storageFailure(err)
	}

	return nil
}
