// internal/domain/payment/service.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/config"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/cart"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/inventory"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/order"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sentinel errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrInvalidSignature   = errors.New("payment signature verification failed")
	ErrPaymentConflict    = errors.New("order already paid with a different payment")
	ErrGatewayMismatch    = errors.New("payment does not belong to this order")
	ErrNoIntent           = errors.New("no payment intent exists for this order")
	ErrGatewayUnavailable = errors.New("payment gateway is not configured")
)

// Service handles payment intents and verification
type Service struct {
	db      *gorm.DB
	gateway *Gateway
	carts   *cart.Service
	buyNow  *cart.BuyNowService
	inv     *inventory.Service
	config  *config.Config
	logger  *logrus.Logger
}

// NewService creates a new payment service
func NewService(
	db *gorm.DB,
	gateway *Gateway,
	carts *cart.Service,
	buyNow *cart.BuyNowService,
	inv *inventory.Service,
	cfg *config.Config,
	logger *logrus.Logger,
) *Service {
	return &Service{
		db:      db,
		gateway: gateway,
		carts:   carts,
		buyNow:  buyNow,
		inv:     inv,
		config:  cfg,
		logger:  logger,
	}
}

// CreateIntentRequest represents a payment intent request
type CreateIntentRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Mock        bool   `json:"mock"`
}

// IntentResponse is what the frontend needs to open the gateway checkout
type IntentResponse struct {
	OrderNumber    string `json:"order_number"`
	GatewayOrderID string `json:"gateway_order_id"`
	GatewayKeyID   string `json:"gateway_key_id,omitempty"`
	Amount         int64  `json:"amount"` // paise
	Currency       string `json:"currency"`
	Mock           bool   `json:"mock"`
}

// VerifyRequest represents the gateway handshake callback
type VerifyRequest struct {
	OrderNumber       string `json:"order_number" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyResponse is the verification result
type VerifyResponse struct {
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// CreateIntent creates a payment intent for a pending order. Without real
// gateway credentials, or when the caller asks for it, a mock intent is
// fabricated so the flow can run end to end.
func (s *Service) CreateIntent(ctx context.Context, userID uint, req *CreateIntentRequest) (*IntentResponse, error) {
	o, err := s.loadOrder(req.OrderNumber, userID)
	if err != nil {
		return nil, err
	}
	if o.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	amountPaise := o.TotalAmount * 100
	mock := req.Mock || !s.config.RazorpayConfigured()

	var gatewayOrderID string
	var method string
	if mock {
		gatewayOrderID = MockGatewayOrderID(time.Now())
		method = order.PaymentMethodMock
	} else {
		gw, err := s.gateway.CreateOrder(ctx, amountPaise, o.Currency, o.OrderNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to create gateway order: %w", err)
		}
		gatewayOrderID = gw.ID
		method = order.PaymentMethodRazorpay
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"razorpay_order_id": gatewayOrderID,
			"payment_method":    method,
		}
		if err := tx.Model(o).Updates(updates).Error; err != nil {
			return err
		}
		record := order.Payment{
			OrderID:        o.ID,
			Amount:         o.TotalAmount,
			Currency:       o.Currency,
			Method:         method,
			Status:         order.PaymentStatusPending,
			GatewayOrderID: gatewayOrderID,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment intent: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_number":     o.OrderNumber,
		"gateway_order_id": gatewayOrderID,
		"mock":             mock,
	}).Info("Payment intent created")

	resp := &IntentResponse{
		OrderNumber:    o.OrderNumber,
		GatewayOrderID: gatewayOrderID,
		Amount:         amountPaise,
		Currency:       o.Currency,
		Mock:           mock,
	}
	if !mock {
		resp.GatewayKeyID = s.config.Razorpay.KeyID
	}
	return resp, nil
}

// Verify settles the gateway handshake. A valid signature confirms the order
// and completes the payment; an invalid one marks both as failed so payment
// can be retried. Replaying a completed verification is a no-op success.
func (s *Service) Verify(ctx context.Context, userID uint, req *VerifyRequest) (*VerifyResponse, error) {
	o, err := s.loadOrder(req.OrderNumber, userID)
	if err != nil {
		return nil, err
	}

	if o.RazorpayOrderID == "" {
		return nil, ErrNoIntent
	}
	if o.RazorpayOrderID != req.RazorpayOrderID {
		return nil, ErrGatewayMismatch
	}

	if o.IsPaid() {
		if o.PaidWith(req.RazorpayPaymentID) {
			return &VerifyResponse{
				OrderNumber:   o.OrderNumber,
				Status:        o.Status,
				PaymentStatus: o.PaymentStatus,
			}, nil
		}
		return nil, ErrPaymentConflict
	}

	// Mock payments skip the signature; the stored method decides, not the
	// caller.
	if o.PaymentMethod != order.PaymentMethodMock {
		if !VerifySignature(s.config.Razorpay.KeySecret, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			if err := s.markFailed(o, req.RazorpayPaymentID); err != nil {
				s.logger.WithError(err).WithField("order_number", o.OrderNumber).
					Error("Failed to record payment failure")
			}
			return nil, ErrInvalidSignature
		}
	}

	applied, err := s.markCompleted(o, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		return nil, err
	}

	if applied {
		// Post-payment cleanup is best effort: the order is already
		// confirmed, so failures here are logged, not surfaced.
		s.settleStock(o)
		s.clearSource(ctx, o)

		s.logger.WithFields(logrus.Fields{
			"order_number": o.OrderNumber,
			"payment_id":   req.RazorpayPaymentID,
		}).Info("Payment verified")
	}

	return &VerifyResponse{
		OrderNumber:   o.OrderNumber,
		Status:        order.StatusConfirmed,
		PaymentStatus: order.PaymentStatusCompleted,
	}, nil
}

// GetStatus returns the payment state of an order
func (s *Service) GetStatus(orderNumber string, userID uint) (*VerifyResponse, error) {
	o, err := s.loadOrder(orderNumber, userID)
	if err != nil {
		return nil, err
	}
	return &VerifyResponse{
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
	}, nil
}

func (s *Service) loadOrder(orderNumber string, userID uint) (*order.Order, error) {
	var o order.Order
	query := s.db.Preload("Items").Preload("Payments").Where("order_number = ?", orderNumber)
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// markCompleted confirms the order and records the winning payment. The
// update is conditional on the order not already being completed, so two
// verifications racing each other settle exactly once; the loser reports
// applied=false and skips the payment record and history.
func (s *Service) markCompleted(o *order.Order, paymentID, signature string) (bool, error) {
	fromStatus := o.Status
	now := time.Now()
	applied := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&order.Order{}).
			Where("id = ? AND payment_status <> ?", o.ID, order.PaymentStatusCompleted).
			Updates(map[string]interface{}{
				"status":              order.StatusConfirmed,
				"payment_status":      order.PaymentStatusCompleted,
				"razorpay_payment_id": paymentID,
				"razorpay_signature":  signature,
				"payment_date":        now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		applied = true

		o.Status = order.StatusConfirmed
		o.PaymentStatus = order.PaymentStatusCompleted
		o.RazorpayPaymentID = paymentID
		o.RazorpaySignature = signature
		o.PaymentDate = &now

		if err := s.settlePaymentRecord(tx, o, paymentID, order.PaymentStatusCompleted, ""); err != nil {
			return err
		}

		history := order.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: fromStatus,
			ToStatus:   order.StatusConfirmed,
			Note:       "payment verified",
		}
		return tx.Create(&history).Error
	})
	return applied, err
}

func (s *Service) markFailed(o *order.Order, paymentID string) error {
	fromStatus := o.Status
	return s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":         order.StatusPaymentFailed,
			"payment_status": order.PaymentStatusFailed,
		}
		if err := tx.Model(o).Updates(updates).Error; err != nil {
			return err
		}

		if err := s.settlePaymentRecord(tx, o, paymentID, order.PaymentStatusFailed, "signature mismatch"); err != nil {
			return err
		}

		history := order.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: fromStatus,
			ToStatus:   order.StatusPaymentFailed,
			Note:       "payment verification failed",
		}
		return tx.Create(&history).Error
	})
}

// settlePaymentRecord finalizes the pending payment record for the order's
// current intent, or creates one if the intent predates the record.
func (s *Service) settlePaymentRecord(tx *gorm.DB, o *order.Order, paymentID, status, reason string) error {
	updates := map[string]interface{}{
		"status":             status,
		"gateway_payment_id": paymentID,
		"failure_reason":     reason,
	}
	var completedAt *time.Time
	if status == order.PaymentStatusCompleted {
		now := time.Now()
		completedAt = &now
		updates["completed_at"] = completedAt
	}
	result := tx.Model(&order.Payment{}).
		Where("order_id = ? AND gateway_order_id = ? AND status = ?",
			o.ID, o.RazorpayOrderID, order.PaymentStatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		record := order.Payment{
			OrderID:          o.ID,
			Amount:           o.TotalAmount,
			Currency:         o.Currency,
			Method:           o.PaymentMethod,
			Status:           status,
			GatewayOrderID:   o.RazorpayOrderID,
			GatewayPaymentID: paymentID,
			FailureReason:    reason,
			CompletedAt:      completedAt,
		}
		return tx.Create(&record).Error
	}
	return nil
}

// settleStock decrements stock for every order line, floored at zero. The
// sale already happened, so shortfalls are logged for reconciliation rather
// than failing the verification.
func (s *Service) settleStock(o *order.Order) {
	for _, item := range o.Items {
		err := s.inv.Decrement(item.ProductID, item.SKU, item.Size, item.Color, item.Quantity, o.OrderNumber)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"order_number": o.OrderNumber,
				"sku":          item.SKU,
			}).Error("Failed to decrement stock after payment")
		}
	}
}

// clearSource empties whichever cart the order was built from
func (s *Service) clearSource(ctx context.Context, o *order.Order) {
	var err error
	if o.Source == order.SourceBuyNow {
		err = s.buyNow.Clear(ctx, o.UserID)
	} else {
		err = s.carts.Clear(o.UserID)
	}
	if err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to clear cart after payment")
	}
}
