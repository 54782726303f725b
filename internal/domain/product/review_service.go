// internal/domain/product/review_service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewService handles product review business logic
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ReviewRequest represents a review submission
type ReviewRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// ListBySKU retrieves reviews for a product, newest first
func (s *ReviewService) ListBySKU(sku string) ([]Review, error) {
	var reviews []Review
	err := s.db.Where("sku = ?", sku).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// Create submits a review for a product. The product must exist.
func (s *ReviewService) Create(sku string, userID *uint, userName string, req *ReviewRequest) (*Review, error) {
	var count int64
	if err := s.db.Model(&Product{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	review := Review{
		SKU:      sku,
		UserID:   userID,
		UserName: strings.TrimSpace(userName),
		Content:  strings.TrimSpace(req.Content),
		Rating:   req.Rating,
	}
	if review.UserName == "" {
		review.UserName = "Anonymous"
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// Delete removes a review. Admins can delete any review; users only their own.
func (s *ReviewService) Delete(id uint, userID uint, isAdmin bool) error {
	var review Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to retrieve review: %w", err)
	}
	if !isAdmin && (review.UserID == nil || *review.UserID != userID) {
		return ErrReviewNotFound
	}
	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
