package services

import (
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory creates a category with a unique name.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if existing, err := s.repo.GetByName(category.Name); err == nil && existing != nil {
		return fmt.Errorf("category with name '%s': %w", category.Name, models.ErrDuplicate)
	}
	return s.repo.Create(category)
}

// UpdateCategory updates an existing category, keeping names unique.
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	if existing, err := s.repo.GetByName(category.Name); err == nil && existing != nil && existing.ID != category.ID {
		return fmt.Errorf("category with name '%s': %w", category.Name, models.ErrDuplicate)
	}
	return s.repo.Update(category)
}

// DeleteCategory deletes a category by its ID.
func (s *CategoryService) DeleteCategory(id string) error {
	return s.repo.Delete(id)
}
