package query

import (
	"fmt"

	"github.com/artisy/storefront/internal/catalog/domain"
)

// FeaturedProductsQuery represents the query to list featured products
type FeaturedProductsQuery struct {
	Limit int
}

// FeaturedProductsHandler handles featured products queries
type FeaturedProductsHandler struct {
	repo domain.ProductRepository
}

// NewFeaturedProductsHandler creates a new featured products handler
func NewFeaturedProductsHandler(repo domain.ProductRepository) *FeaturedProductsHandler {
	return &FeaturedProductsHandler{repo: repo}
}

// Handle executes the featured products query
func (h *FeaturedProductsHandler) Handle(q FeaturedProductsQuery) ([]domain.Product, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 4
	}

	products, err := h.repo.FindFeatured(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}
