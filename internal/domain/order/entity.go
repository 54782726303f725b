// internal/domain/order/entity.go
package order

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPending       = "pending"
	StatusPaymentFailed = "payment_failed"
	StatusConfirmed     = "confirmed"
	StatusProcessing    = "processing"
	StatusShipped       = "shipped"
	StatusDelivered     = "delivered"
	StatusCancelled     = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment methods
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodMock     = "mock"
)

// Order sources
const (
	SourceCart   = "cart"
	SourceBuyNow = "buy_now"
)

// ShippingAddress is embedded into the order as a snapshot; there is no
// separate address book.
type ShippingAddress struct {
	Name         string `gorm:"column:ship_name;not null;size:255" json:"name"`
	Phone        string `gorm:"column:ship_phone;not null;size:20" json:"phone"`
	AddressLine1 string `gorm:"column:ship_address1;not null;size:255" json:"address_line1"`
	AddressLine2 string `gorm:"column:ship_address2;size:255" json:"address_line2,omitempty"`
	City         string `gorm:"column:ship_city;not null;size:100" json:"city"`
	State        string `gorm:"column:ship_state;not null;size:100" json:"state"`
	Pincode      string `gorm:"column:ship_pincode;not null;size:10" json:"pincode"`
}

// Order represents a customer order. All amounts are whole rupees. The
// gateway correlation fields on the order itself are the operational record;
// Payment rows are the audit trail.
type Order struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderNumber       string          `gorm:"uniqueIndex;not null;size:30" json:"order_number"`
	UserID            uint            `gorm:"not null;index" json:"user_id"`
	Status            string          `gorm:"not null;default:'pending';size:20;index" json:"status"`
	PaymentStatus     string          `gorm:"not null;default:'pending';size:20" json:"payment_status"`
	PaymentMethod     string          `gorm:"size:20" json:"payment_method"`
	Source            string          `gorm:"not null;default:'cart';size:10" json:"source"`
	Subtotal          int64           `gorm:"not null" json:"subtotal"`
	ShippingCost      int64           `gorm:"not null" json:"shipping_cost"`
	TaxAmount         int64           `gorm:"not null" json:"tax_amount"`
	TotalAmount       int64           `gorm:"not null" json:"total_amount"`
	Currency          string          `gorm:"not null;default:'INR';size:3" json:"currency"`
	RazorpayOrderID   string          `gorm:"size:100;index" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string          `gorm:"size:100;index" json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string          `gorm:"size:255" json:"razorpay_signature,omitempty"`
	PaymentDate       *time.Time      `json:"payment_date,omitempty"`
	ShippingAddress   ShippingAddress `gorm:"embedded" json:"shipping_address"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;" json:"items"`
	Payments      []Payment            `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
}

// OrderItem is a priced snapshot of one order line
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	SKU       string    `gorm:"not null;size:100" json:"sku"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Size      string    `gorm:"size:10;default:''" json:"size,omitempty"`
	Color     string    `gorm:"size:50;default:''" json:"color,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // unit price at purchase time
	Total     int64     `gorm:"not null" json:"total"`
	ImageURL  string    `gorm:"size:500" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment is one gateway interaction recorded against an order
type Payment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	OrderID          uint       `gorm:"not null;index" json:"order_id"`
	Amount           int64      `gorm:"not null" json:"amount"`
	Currency         string     `gorm:"not null;default:'INR';size:3" json:"currency"`
	Method           string     `gorm:"not null;size:20" json:"method"`
	Status           string     `gorm:"not null;size:20" json:"status"`
	GatewayOrderID   string     `gorm:"size:100" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string     `gorm:"size:100;index" json:"gateway_payment_id,omitempty"`
	FailureReason    string     `gorm:"size:255" json:"failure_reason,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// OrderStatusHistory records every order status transition
type OrderStatusHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	FromStatus string    `gorm:"size:20" json:"from_status"`
	ToStatus   string    `gorm:"not null;size:20" json:"to_status"`
	Note       string    `gorm:"size:255" json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (Payment) TableName() string            { return "payments" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// validTransitions is the order status state machine
var validTransitions = map[string][]string{
	StatusPending:       {StatusConfirmed, StatusPaymentFailed, StatusCancelled},
	StatusPaymentFailed: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:     {StatusProcessing, StatusCancelled},
	StatusProcessing:    {StatusShipped, StatusCancelled},
	StatusShipped:       {StatusDelivered},
	StatusDelivered:     {},
	StatusCancelled:     {},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsPaid reports whether the order has a completed payment
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

// PaidWith reports whether this gateway payment is the one that completed the
// order. Replaying it is a no-op; any other payment id against a paid order
// is a conflict.
func (o *Order) PaidWith(paymentID string) bool {
	return o.IsPaid() && o.RazorpayPaymentID == paymentID
}

// GenerateOrderNumber produces an order number of the form ORD-YYYYMMDD-NNNNN
// with a random five-digit suffix. Collisions are possible and handled by the
// caller retrying.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", now.Format("20060102"), rand.Intn(100000))
}
