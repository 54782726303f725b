// internal/domain/inventory/service.go
package inventory

import (
	"errors"
	"fmt"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/product"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors returned by the stock validator
var (
	ErrVariantRequired   = errors.New("size or colour selection is required for this product")
	ErrVariantNotFound   = errors.New("requested variant does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Service handles stock validation and movements
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Availability is the result of a stock check for one line
type Availability struct {
	OK        bool `json:"ok"`
	Available int  `json:"available"`
}

// CheckAvailability validates a requested quantity against a product's stock.
// A product sold per size/colour rejects requests that omit the required
// discriminators; a flat product ignores any discriminators sent with it.
func (s *Service) CheckAvailability(p *product.Product, size, color string, quantity int) (*Availability, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if p.HasSize && size == "" {
		return nil, ErrVariantRequired
	}
	if p.HasColor && color == "" {
		return nil, ErrVariantRequired
	}

	// An unknown combination is out of stock, not an error
	variant := p.VariantFor(size, color)
	if variant == nil {
		return &Availability{OK: false, Available: 0}, nil
	}

	return &Availability{
		OK:        variant.Stock >= quantity,
		Available: variant.Stock,
	}, nil
}

// DecrementLocked reduces a variant's stock inside the caller's transaction,
// taking a row lock so concurrent checkouts serialize on the variant. Stock
// never goes below zero.
func (s *Service) DecrementLocked(tx *gorm.DB, productID uint, sku, size, color string, quantity int, reference string) error {
	var variant product.ProductVariant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return fmt.Errorf("failed to lock variant: %w", err)
	}

	newStock := variant.Stock - quantity
	if newStock < 0 {
		newStock = 0
	}
	if err := tx.Model(&variant).Update("stock", newStock).Error; err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	movement := StockMovement{
		ProductID:    productID,
		VariantID:    variant.ID,
		SKU:          sku,
		MovementType: MovementTypeSale,
		Quantity:     -quantity,
		StockAfter:   newStock,
		Reference:    reference,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

// Decrement runs DecrementLocked in its own transaction
func (s *Service) Decrement(productID uint, sku, size, color string, quantity int, reference string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.DecrementLocked(tx, productID, sku, size, color, quantity, reference)
	})
}

// ListMovements retrieves the movement history for a product, newest first
func (s *Service) ListMovements(productID uint, limit int) ([]StockMovement, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var movements []StockMovement
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").Limit(limit).Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}
	return movements, nil
}
