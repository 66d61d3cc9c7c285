package query

import (
	"fmt"

	"github.com/artisy/storefront/internal/catalog/domain"
)

// FilterOptionsQuery represents the query to list distinct filter values
type FilterOptionsQuery struct{}

// FilterOptionsHandler handles filter options queries
type FilterOptionsHandler struct {
	repo domain.ProductRepository
}

// NewFilterOptionsHandler creates a new filter options handler
func NewFilterOptionsHandler(repo domain.ProductRepository) *FilterOptionsHandler {
	return &FilterOptionsHandler{repo: repo}
}

// Handle executes the filter options query
func (h *FilterOptionsHandler) Handle(FilterOptionsQuery) (*domain.FilterOptions, error) {
	options, err := h.repo.FilterOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load filter options: %w", err)
	}
	return options, nil
}
