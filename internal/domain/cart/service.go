// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/inventory"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/product"
	"gorm.io/gorm"
)

// Sentinel errors
var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrProductUnavailable = errors.New("product is not available")
)

// Service handles cart business logic
type Service struct {
	db        *gorm.DB
	products  *product.Service
	inventory *inventory.Service
}

// NewService creates a new cart service
func NewService(db *gorm.DB, products *product.Service, inv *inventory.Service) *Service {
	return &Service{
		db:        db,
		products:  products,
		inventory: inv,
	}
}

// AddRequest represents an add-to-cart request
type AddRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest represents a quantity update request
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// Get retrieves the user's cart with recomputed totals
func (s *Service) Get(userID uint) (*Cart, error) {
	var items []CartItem
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return assemble(items), nil
}

// Add adds a product to the cart. Adding a line that already exists merges
// quantities instead of duplicating the line.
func (s *Service) Add(userID uint, req *AddRequest) (*Cart, error) {
	p, err := s.products.GetBySKU(req.SKU)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductUnavailable
	}

	size, color := req.Size, req.Color
	if !p.HasSize {
		size = ""
	}
	if !p.HasColor {
		color = ""
	}

	// Validate the requested quantity on top of what is already in the cart
	var existing CartItem
	found := true
	err = s.db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
		userID, p.ID, size, color).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check cart: %w", err)
		}
		found = false
	}

	requested := req.Quantity
	if found {
		requested += existing.Quantity
	}
	avail, err := s.inventory.CheckAvailability(p, size, color, requested)
	if err != nil {
		return nil, err
	}
	if !avail.OK {
		return nil, fmt.Errorf("%w: only %d available", inventory.ErrInsufficientStock, avail.Available)
	}

	if found {
		existing.Quantity = requested
		existing.Price = p.Price
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := CartItem{
			UserID:    userID,
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Size:      size,
			Color:     color,
			Quantity:  req.Quantity,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.Get(userID)
}

// SetQuantity updates a cart line's quantity. A quantity below 1 removes the
// line.
func (s *Service) SetQuantity(userID, itemID uint, quantity int) (*Cart, error) {
	var item CartItem
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to retrieve cart item: %w", err)
	}

	if quantity < 1 {
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return s.Get(userID)
	}

	p, err := s.products.GetByID(item.ProductID)
	if err == nil {
		avail, aerr := s.inventory.CheckAvailability(p, item.Size, item.Color, quantity)
		if aerr != nil {
			return nil, aerr
		}
		if !avail.OK {
			return nil, fmt.Errorf("%w: only %d available", inventory.ErrInsufficientStock, avail.Available)
		}
	}

	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return s.Get(userID)
}

// Remove deletes a cart line. Removing an absent line is not an error.
func (s *Service) Remove(userID, itemID uint) (*Cart, error) {
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&CartItem{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return s.Get(userID)
}

// Clear empties the user's cart
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// assemble recomputes the derived totals from the line items
func assemble(items []CartItem) *Cart {
	cart := &Cart{Items: items}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	for _, item := range items {
		cart.ItemCount += item.Quantity
		cart.Subtotal += item.LineTotal()
	}
	return cart
}
