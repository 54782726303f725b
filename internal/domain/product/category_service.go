// internal/domain/product/category_service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category with this name already exists")
)

// CategoryService handles category business logic
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryRequest represents an admin category create/update request
type CategoryRequest struct {
	Name          string `json:"name" binding:"required"`
	RequiresSize  bool   `json:"requires_size"`
	RequiresColor bool   `json:"requires_color"`
}

// List retrieves all categories
func (s *CategoryService) List() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by id
func (s *CategoryService) GetByID(id uint) (*Category, error) {
	var c Category
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	return &c, nil
}

// Create creates a new category
func (s *CategoryService) Create(req *CategoryRequest) (*Category, error) {
	c := Category{
		Name:          strings.TrimSpace(req.Name),
		RequiresSize:  req.RequiresSize,
		RequiresColor: req.RequiresColor,
	}
	if err := s.db.Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// Update updates an existing category
func (s *CategoryService) Update(id uint, req *CategoryRequest) (*Category, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	c.Name = strings.TrimSpace(req.Name)
	c.RequiresSize = req.RequiresSize
	c.RequiresColor = req.RequiresColor
	if err := s.db.Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// Delete removes a category. Products referencing it fall back to uncategorized.
func (s *CategoryService) Delete(id uint) error {
	result := s.db.Delete(&Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
