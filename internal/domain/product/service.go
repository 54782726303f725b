// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/config"
	"gorm.io/gorm"
)

// Sentinel errors returned by the catalog
var (
	ErrNotFound     = errors.New("product not found")
	ErrDuplicateSKU = errors.New("product with this SKU already exists")
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	Search     string `form:"search"`
	CategoryID uint   `form:"category_id"`
	InStock    bool   `form:"in_stock"`
}

// ListResponse represents a paginated product listing
type ListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// VariantInput is one (size, colour, stock) row of an admin create/update request
type VariantInput struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock" binding:"min=0"`
}

// CreateRequest represents an admin product create request.
// Either Variants or the flat Stock field supplies the stock; a flat number is
// folded into a single blank-discriminator variant.
type CreateRequest struct {
	SKU         string         `json:"sku" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       int64          `json:"price" binding:"required,min=0"`
	ImageURL    string         `json:"image_url"`
	HasSize     bool           `json:"has_size"`
	HasColor    bool           `json:"has_color"`
	CategoryID  *uint          `json:"category_id"`
	Variants    []VariantInput `json:"variants"`
	Stock       *int           `json:"stock"`
}

// UpdateRequest represents an admin product update request
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
	CategoryID  *uint   `json:"category_id"`
	IsActive    *bool   `json:"is_active"`
}

// List retrieves active products with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{}).
		Preload("Variants").
		Preload("Category").
		Where("is_active = ?", true)

	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	if req.InStock {
		filtered := products[:0]
		for _, p := range products {
			if p.IsInStock() {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Products: products,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetBySKU retrieves a single product by its external-facing SKU
func (s *Service) GetBySKU(sku string) (*Product, error) {
	var p Product
	err := s.db.Preload("Variants").Preload("Category").
		Where("sku = ?", sku).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a single product by internal id
func (s *Service) GetByID(id uint) (*Product, error) {
	var p Product
	err := s.db.Preload("Variants").Preload("Category").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &p, nil
}

// Create creates a product from an admin request
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	variants, err := normalizeVariants(req)
	if err != nil {
		return nil, err
	}

	p := Product{
		SKU:         strings.ToUpper(strings.TrimSpace(req.SKU)),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		HasSize:     req.HasSize,
		HasColor:    req.HasColor,
		CategoryID:  req.CategoryID,
		IsActive:    true,
		Variants:    variants,
	}
	if p.ImageURL == "" {
		p.ImageURL = "/placeholder.png"
	}

	if err := s.db.Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// Update applies a partial admin update to a product
func (s *Service) Update(id uint, req *UpdateRequest) (*Product, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return s.GetByID(id)
}

// Delete soft-deletes a product. Historical orders keep their snapshots, so a
// referenced product simply disappears from the catalog.
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restock replaces a product's variant stock levels from an admin request
func (s *Service) Restock(id uint, inputs []VariantInput) (*Product, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			size, color := in.Size, in.Color
			if !p.HasSize {
				size = ""
			}
			if !p.HasColor {
				color = ""
			}

			result := tx.Model(&ProductVariant{}).
				Where("product_id = ? AND size = ? AND color = ?", p.ID, size, color).
				Update("stock", in.Stock)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				v := ProductVariant{ProductID: p.ID, Size: size, Color: color, Stock: in.Stock}
				if err := tx.Create(&v).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restock product: %w", err)
	}
	return s.GetByID(id)
}

// normalizeVariants folds a create request's stock input into variant rows
func normalizeVariants(req *CreateRequest) ([]ProductVariant, error) {
	if req.HasSize || req.HasColor {
		if len(req.Variants) == 0 {
			return nil, fmt.Errorf("at least one variant is required for a size/colour product")
		}
		variants := make([]ProductVariant, 0, len(req.Variants))
		for _, in := range req.Variants {
			size, color := strings.ToUpper(strings.TrimSpace(in.Size)), strings.TrimSpace(in.Color)
			if req.HasSize && size == "" {
				return nil, fmt.Errorf("variant size is required for this product")
			}
			if req.HasColor && color == "" {
				return nil, fmt.Errorf("variant colour is required for this product")
			}
			if !req.HasSize {
				size = ""
			}
			if !req.HasColor {
				color = ""
			}
			variants = append(variants, ProductVariant{Size: size, Color: color, Stock: in.Stock})
		}
		return variants, nil
	}

	// Flat-stock product: one blank-discriminator variant
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	} else if len(req.Variants) > 0 {
		stock = req.Variants[0].Stock
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	return []ProductVariant{{Stock: stock}}, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
