package command

import (
	"fmt"
	"math"
	"time"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// AddReviewCommand represents the command to add a product review
type AddReviewCommand struct {
	ProductID  uint
	UserID     string
	Rating     int
	ReviewText string
}

// AddReviewHandler handles add review commands. Adding a review is the only
// writer of the product's rating and review_count.
type AddReviewHandler struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
}

// NewAddReviewHandler creates a new add review handler
func NewAddReviewHandler(products domain.ProductRepository, reviews domain.ReviewRepository) *AddReviewHandler {
	return &AddReviewHandler{products: products, reviews: reviews}
}

// Handle executes the add review command
func (h *AddReviewHandler) Handle(cmd AddReviewCommand) (*domain.Review, error) {
	if cmd.UserID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, apperr.New(apperr.InvalidArgument, "rating must be between 1 and 5")
	}

	// Product must exist before anything is written.
	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, err
	}

	// One review per user per product. The point lookup leaves a narrow
	// race window; the unique index is the backstop.
	if existing, _ := h.reviews.FindByProductAndUser(cmd.ProductID, cmd.UserID); existing != nil {
		return nil, apperr.New(apperr.Conflict, "you have already reviewed this product")
	}

	review := &domain.Review{
		ProductID:  cmd.ProductID,
		UserID:     cmd.UserID,
		Rating:     cmd.Rating,
		ReviewText: cmd.ReviewText,
		CreatedAt:  time.Now(),
	}
	if err := h.reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Full recompute over all reviews rather than an incremental running
	// average. Correctness over efficiency at this review volume.
	ratings, err := h.reviews.ListRatings(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute rating: %w", err)
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	average := math.Round(float64(sum)/float64(len(ratings))*10) / 10

	if err := h.products.UpdateRating(cmd.ProductID, average, len(ratings)); err != nil {
		return nil, fmt.Errorf("failed to update product rating: %w", err)
	}

	return review, nil
}
