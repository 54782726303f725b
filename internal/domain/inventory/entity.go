// internal/domain/inventory/entity.go
package inventory

import "time"

// Movement types
const (
	MovementTypeSale    = "sale"
	MovementTypeRestock = "restock"
	MovementTypeAdjust  = "adjustment"
)

// StockMovement is an audit row for every stock change
type StockMovement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	VariantID    uint      `gorm:"not null;index" json:"variant_id"`
	SKU          string    `gorm:"not null;size:100" json:"sku"`
	MovementType string    `gorm:"not null;size:20" json:"movement_type"`
	Quantity     int       `gorm:"not null" json:"quantity"` // negative for outbound
	StockAfter   int       `gorm:"not null" json:"stock_after"`
	Reference    string    `gorm:"size:100" json:"reference"` // order number or admin note
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}
