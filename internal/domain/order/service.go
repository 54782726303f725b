// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors
var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Service handles order retrieval and lifecycle management. Order creation
// lives in the checkout package.
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
}

// ListResponse represents a paginated order listing
type ListResponse struct {
	Orders     []Order `json:"orders"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int64   `json:"total"`
	TotalPages int     `json:"total_pages"`
}

// UpdateStatusRequest represents an admin status update
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// GetByOrderNumber retrieves an order by its public number, enforcing
// ownership. Admins pass userID 0 to skip the ownership check.
func (s *Service) GetByOrderNumber(orderNumber string, userID uint) (*Order, error) {
	query := s.db.Preload("Items").Preload("Payments").Preload("StatusHistory").
		Where("order_number = ?", orderNumber)
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var o Order
	if err := query.First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// ListUserOrders retrieves a user's orders, newest first
func (s *Service) ListUserOrders(userID uint, req *ListRequest) (*ListResponse, error) {
	return s.list(s.db.Where("user_id = ?", userID), req)
}

// ListAllOrders retrieves all orders for admins, newest first
func (s *Service) ListAllOrders(req *ListRequest) (*ListResponse, error) {
	return s.list(s.db, req)
}

func (s *Service) list(scope *gorm.DB, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := scope.Model(&Order{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &ListResponse{
		Orders:     orders,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
	}, nil
}

// UpdateStatus moves an order to a new status, validating the transition and
// recording it in the history.
func (s *Service) UpdateStatus(orderNumber string, req *UpdateStatusRequest) (*Order, error) {
	var o Order
	if err := s.db.Where("order_number = ?", orderNumber).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !CanTransition(o.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, req.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		history := OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: o.Status,
			ToStatus:   req.Status,
			Note:       req.Note,
		}
		if err := tx.Model(&o).Update("status", req.Status).Error; err != nil {
			return err
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.GetByOrderNumber(orderNumber, 0)
}
