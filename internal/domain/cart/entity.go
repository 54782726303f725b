// internal/domain/cart/entity.go
package cart

import "time"

// CartItem is one line of a user's cart. Name and price are snapshots taken
// when the line was added; checkout re-reads the live product anyway.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_line,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_user_line,unique" json:"product_id"`
	SKU       string    `gorm:"not null;size:100" json:"sku"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Size      string    `gorm:"size:10;default:'';index:idx_cart_user_line,unique" json:"size,omitempty"`
	Color     string    `gorm:"size:50;default:'';index:idx_cart_user_line,unique" json:"color,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // whole rupees, unit price
	ImageURL  string    `gorm:"size:500" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal returns quantity x unit price
func (c *CartItem) LineTotal() int64 {
	return int64(c.Quantity) * c.Price
}

// Cart is the assembled cart response
type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  int64      `json:"subtotal"`
}

// BuyNowCart is a single-product cart held in Redis with a TTL. It exists so
// a "buy now" click can go straight to checkout without touching the
// persistent cart.
type BuyNowCart struct {
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// LineTotal returns quantity x unit price
func (b *BuyNowCart) LineTotal() int64 {
	return int64(b.Quantity) * b.Price
}
