package query

import "github.com/artisy/storefront/internal/wishlist/domain"

// ListWishlistQuery represents the query to list a user's saved products
type ListWishlistQuery struct {
	UserID string
}

// ListWishlistResult holds the saved product ids, newest first
type ListWishlistResult struct {
	ProductIDs []uint `json:"product_ids"`
}

// ListWishlistHandler handles list wishlist queries
type ListWishlistHandler struct {
	wishlist domain.Repository
}

// NewListWishlistHandler creates a new list wishlist handler
func NewListWishlistHandler(wishlist domain.Repository) *ListWishlistHandler {
	return &ListWishlistHandler{wishlist: wishlist}
}

// Handle executes the list wishlist query
func (h *ListWishlistHandler) Handle(q ListWishlistQuery) (*ListWishlistResult, error) {
	ids, err := h.wishlist.FindProductIDs(q.UserID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return &ListWishlistResult{ProductIDs: ids}, nil
}
