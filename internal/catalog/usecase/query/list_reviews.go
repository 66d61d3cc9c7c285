package query

import (
	"fmt"

	"github.com/artisy/storefront/internal/catalog/domain"
)

// ListReviewsQuery represents the query to list a product's reviews
type ListReviewsQuery struct {
	ProductID uint
	Limit     int
	Offset    int
}

// ListReviewsHandler handles list reviews queries
type ListReviewsHandler struct {
	repo domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(repo domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(q ListReviewsQuery) ([]domain.Review, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	reviews, err := h.repo.FindByProduct(q.ProductID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
