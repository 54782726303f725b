// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/config"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/cart"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/inventory"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/order"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/product"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors
var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("shipping address is incomplete")
)

const orderNumberAttempts = 5

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// Service orchestrates order creation: it gathers the purchase lines,
// re-validates stock inside a transaction and writes the priced order.
type Service struct {
	db        *gorm.DB
	products  *product.Service
	inventory *inventory.Service
	carts     *cart.Service
	buyNow    *cart.BuyNowService
	pricing   Pricing
	currency  string
	logger    *logrus.Logger
}

// NewService creates a new checkout service
func NewService(
	db *gorm.DB,
	products *product.Service,
	inv *inventory.Service,
	carts *cart.Service,
	buyNow *cart.BuyNowService,
	cfg *config.Config,
	logger *logrus.Logger,
) *Service {
	return &Service{
		db:        db,
		products:  products,
		inventory: inv,
		carts:     carts,
		buyNow:    buyNow,
		pricing: Pricing{
			FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
			FlatShippingRate:      cfg.Checkout.FlatShippingRate,
			TaxRate:               cfg.Checkout.TaxRate,
		},
		currency: cfg.Checkout.Currency,
		logger:   logger,
	}
}

// AddressInput is the shipping address supplied at checkout
type AddressInput struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	Source          string       `json:"source"` // cart (default) or buy_now
	ShippingAddress AddressInput `json:"shipping_address" binding:"required"`
}

// purchaseLine is an internal normalized view of one line to order
type purchaseLine struct {
	ProductID uint
	SKU       string
	Name      string
	Size      string
	Color     string
	Quantity  int
	ImageURL  string
}

// CreateOrder builds an order from the user's cart or buy-now cart. Stock is
// re-validated per line inside the transaction with row locks; any shortfall
// fails the whole order. Prices are re-read from the live catalog, never
// trusted from the cart snapshot.
func (s *Service) CreateOrder(ctx context.Context, userID uint, req *CreateOrderRequest) (*order.Order, error) {
	addr, err := validateAddress(&req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = order.SourceCart
	}

	lines, err := s.gatherLines(ctx, userID, source)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var created *order.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		items, subtotal, err := s.priceLines(tx, lines)
		if err != nil {
			return err
		}
		totals := s.pricing.Compute(subtotal)

		o := order.Order{
			UserID:          userID,
			Status:          order.StatusPending,
			PaymentStatus:   order.PaymentStatusPending,
			Source:          source,
			Subtotal:        totals.Subtotal,
			ShippingCost:    totals.ShippingCost,
			TaxAmount:       totals.TaxAmount,
			TotalAmount:     totals.TotalAmount,
			Currency:        s.currency,
			ShippingAddress: *addr,
			Items:           items,
		}

		if err := s.insertWithFreshNumber(tx, &o); err != nil {
			return err
		}

		history := order.OrderStatusHistory{
			OrderID:  o.ID,
			ToStatus: order.StatusPending,
			Note:     "order created",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": created.OrderNumber,
		"user_id":      userID,
		"source":       source,
		"total":        created.TotalAmount,
	}).Info("Order created")

	return created, nil
}

// gatherLines reads the purchase lines from the chosen source
func (s *Service) gatherLines(ctx context.Context, userID uint, source string) ([]purchaseLine, error) {
	switch source {
	case order.SourceBuyNow:
		bn, err := s.buyNow.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		return []purchaseLine{{
			ProductID: bn.ProductID,
			SKU:       bn.SKU,
			Name:      bn.Name,
			Size:      bn.Size,
			Color:     bn.Color,
			Quantity:  bn.Quantity,
			ImageURL:  bn.ImageURL,
		}}, nil
	case order.SourceCart:
		c, err := s.carts.Get(userID)
		if err != nil {
			return nil, err
		}
		lines := make([]purchaseLine, 0, len(c.Items))
		for _, item := range c.Items {
			lines = append(lines, purchaseLine{
				ProductID: item.ProductID,
				SKU:       item.SKU,
				Name:      item.Name,
				Size:      item.Size,
				Color:     item.Color,
				Quantity:  item.Quantity,
				ImageURL:  item.ImageURL,
			})
		}
		return lines, nil
	default:
		return nil, fmt.Errorf("unknown order source %q", source)
	}
}

// priceLines locks each variant row, re-checks stock and prices the lines
// from the live catalog. All-or-nothing: the first shortfall aborts.
func (s *Service) priceLines(tx *gorm.DB, lines []purchaseLine) ([]order.OrderItem, int64, error) {
	items := make([]order.OrderItem, 0, len(lines))
	var subtotal int64

	for _, line := range lines {
		var p product.Product
		err := tx.Preload("Variants").Where("sku = ?", line.SKU).First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("%w: %s", product.ErrNotFound, line.SKU)
			}
			return nil, 0, fmt.Errorf("failed to load product %s: %w", line.SKU, err)
		}
		if !p.IsActive {
			return nil, 0, fmt.Errorf("%s is no longer available", line.SKU)
		}

		// Serialize concurrent checkouts on the variant row
		var variant product.ProductVariant
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ? AND size = ? AND color = ?", p.ID, line.Size, line.Color).
			First(&variant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("%w: %s", inventory.ErrVariantNotFound, line.SKU)
			}
			return nil, 0, fmt.Errorf("failed to lock stock for %s: %w", line.SKU, err)
		}
		if variant.Stock < line.Quantity {
			return nil, 0, fmt.Errorf("%w: %s has %d left, %d requested",
				inventory.ErrInsufficientStock, line.SKU, variant.Stock, line.Quantity)
		}

		total := int64(line.Quantity) * p.Price
		items = append(items, order.OrderItem{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
			Price:     p.Price,
			Total:     total,
			ImageURL:  p.ImageURL,
		})
		subtotal += total
	}

	return items, subtotal, nil
}

// insertWithFreshNumber inserts the order, retrying on order-number collisions
func (s *Service) insertWithFreshNumber(tx *gorm.DB, o *order.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		o.OrderNumber = order.GenerateOrderNumber(time.Now())
		err := tx.Create(o).Error
		if err == nil {
			return nil
		}
		if !isOrderNumberCollision(err) {
			return fmt.Errorf("failed to create order: %w", err)
		}
		o.ID = 0
		for i := range o.Items {
			o.Items[i].ID = 0
			o.Items[i].OrderID = 0
		}
	}
	return fmt.Errorf("failed to allocate a unique order number after %d attempts", orderNumberAttempts)
}

func isOrderNumberCollision(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, "order_number")
}

// validateAddress checks the address and returns the order snapshot form
func validateAddress(in *AddressInput) (*order.ShippingAddress, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	line1 := strings.TrimSpace(in.AddressLine1)
	city := strings.TrimSpace(in.City)
	state := strings.TrimSpace(in.State)
	pincode := strings.TrimSpace(in.Pincode)

	if name == "" || phone == "" || line1 == "" || city == "" || state == "" {
		return nil, ErrInvalidAddress
	}
	if !pincodePattern.MatchString(pincode) {
		return nil, fmt.Errorf("%w: pincode must be 6 digits", ErrInvalidAddress)
	}

	return &order.ShippingAddress{
		Name:         name,
		Phone:        phone,
		AddressLine1: line1,
		AddressLine2: strings.TrimSpace(in.AddressLine2),
		City:         city,
		State:        state,
		Pincode:      pincode,
	}, nil
}
