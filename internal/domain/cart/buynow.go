// internal/domain/cart/buynow.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/inventory"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/product"
	"github.com/redis/go-redis/v9"
)

// ErrBuyNowExpired is returned when no live buy-now cart exists for the user
var ErrBuyNowExpired = errors.New("buy now cart has expired")

// BuyNowService manages the short-lived single-product checkout cart in Redis
type BuyNowService struct {
	redis     *redis.Client
	products  *product.Service
	inventory *inventory.Service
	ttl       time.Duration
}

// NewBuyNowService creates a new buy-now cart service
func NewBuyNowService(rdb *redis.Client, products *product.Service, inv *inventory.Service, ttl time.Duration) *BuyNowService {
	return &BuyNowService{
		redis:     rdb,
		products:  products,
		inventory: inv,
		ttl:       ttl,
	}
}

// BuyNowRequest represents a buy-now request
type BuyNowRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

func buyNowKey(userID uint) string {
	return fmt.Sprintf("buynow:%d", userID)
}

// Set creates or replaces the user's buy-now cart. A second buy-now click
// overwrites the first; the TTL restarts.
func (s *BuyNowService) Set(ctx context.Context, userID uint, req *BuyNowRequest) (*BuyNowCart, error) {
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

	avail, err := s.inventory.CheckAvailability(p, size, color, req.Quantity)
	if err != nil {
		return nil, err
	}
	if !avail.OK {
		return nil, fmt.Errorf("%w: only %d available", inventory.ErrInsufficientStock, avail.Available)
	}

	bn := &BuyNowCart{
		UserID:    userID,
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Size:      size,
		Color:     color,
		Quantity:  req.Quantity,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(bn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal buy now cart: %w", err)
	}
	if err := s.redis.Set(ctx, buyNowKey(userID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store buy now cart: %w", err)
	}
	return bn, nil
}

// Get retrieves the user's live buy-now cart
func (s *BuyNowService) Get(ctx context.Context, userID uint) (*BuyNowCart, error) {
	data, err := s.redis.Get(ctx, buyNowKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBuyNowExpired
		}
		return nil, fmt.Errorf("failed to retrieve buy now cart: %w", err)
	}

	var bn BuyNowCart
	if err := json.Unmarshal(data, &bn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal buy now cart: %w", err)
	}
	return &bn, nil
}

// Clear drops the buy-now cart. Clearing an absent cart is not an error.
func (s *BuyNowService) Clear(ctx context.Context, userID uint) error {
	if err := s.redis.Del(ctx, buyNowKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear buy now cart: %w", err)
	}
	return nil
}
