package query

import (
	"fmt"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// SearchProductsQuery represents the query to search the catalog
type SearchProductsQuery struct {
	Filter domain.SearchFilter
}

// SearchProductsResult is one page of products plus pagination metadata.
type SearchProductsResult struct {
	Products []domain.Product
	Total    int64
	Limit    int
	Offset   int
	HasMore  bool
}

// SearchProductsHandler handles catalog search queries
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search products query
func (h *SearchProductsHandler) Handle(q SearchProductsQuery) (*SearchProductsResult, error) {
	filter := q.Filter

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "offset must not be negative")
	}
	if filter.SortBy == "" {
		filter.SortBy = domain.SortFeatured
	}
	switch filter.SortBy {
	case domain.SortFeatured, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortNewest, domain.SortRating:
	default:
		return nil, apperr.Newf(apperr.InvalidArgument, "invalid sort key: %s", filter.SortBy)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperr.New(apperr.InvalidArgument, "minPrice must not exceed maxPrice")
	}

	products, total, err := h.repo.Search(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return &SearchProductsResult{
		Products: products,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
		HasMore:  total > int64(filter.Offset+filter.Limit),
	}, nil
}
