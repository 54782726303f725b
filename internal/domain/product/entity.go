// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product.
//
// Stock always lives on variants. A product without size/colour options owns
// exactly one variant with empty discriminators; the admin API folds a flat
// stock number into that variant at the boundary.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"uniqueIndex;not null;size:100" json:"sku"` // external-facing product id, e.g. ALCH001
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // whole rupees
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	HasSize     bool           `gorm:"default:false" json:"has_size"`
	HasColor    bool           `gorm:"default:false" json:"has_color"`
	CategoryID  *uint          `gorm:"index" json:"category_id,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants"`
}

// ProductVariant holds the stock for one (size, colour) combination.
// Both discriminators empty means the product's single flat-stock variant.
type ProductVariant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index:idx_variant_product_discriminator,unique" json:"product_id"`
	Size      string    `gorm:"size:10;default:'';index:idx_variant_product_discriminator,unique" json:"size,omitempty"`
	Color     string    `gorm:"size:50;default:'';index:idx_variant_product_discriminator,unique" json:"color,omitempty"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups products and declares which discriminators its products need
type Category struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"uniqueIndex;not null;size:255" json:"name"`
	RequiresSize  bool           `gorm:"default:false" json:"requires_size"`
	RequiresColor bool           `gorm:"default:false" json:"requires_color"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Review represents a customer review for a product
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SKU       string         `gorm:"not null;size:100;index" json:"sku"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	UserName  string         `gorm:"not null;size:255" json:"user_name"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Rating    int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string        { return "products" }
func (ProductVariant) TableName() string { return "product_variants" }
func (Category) TableName() string       { return "categories" }
func (Review) TableName() string         { return "reviews" }

// HasVariants reports whether the product is sold per size/colour
func (p *Product) HasVariants() bool {
	return p.HasSize || p.HasColor
}

// VariantFor returns the variant matching the given discriminators.
// Lookup is by exact match; no match returns nil.
func (p *Product) VariantFor(size, color string) *ProductVariant {
	if !p.HasSize {
		size = ""
	}
	if !p.HasColor {
		color = ""
	}
	for i := range p.Variants {
		if p.Variants[i].Size == size && p.Variants[i].Color == color {
			return &p.Variants[i]
		}
	}
	return nil
}

// TotalStock sums stock across all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// IsInStock reports whether any variant has stock left
func (p *Product) IsInStock() bool {
	return p.TotalStock() > 0
}
