package query

import "github.com/artisy/storefront/internal/wishlist/domain"

// ContainsQuery asks whether a product is on a user's wishlist. An empty
// user id means an anonymous visitor, for whom the answer is always false.
type ContainsQuery struct {
	UserID    string
	ProductID uint
}

// ContainsResult holds the membership answer
type ContainsResult struct {
	InWishlist bool `json:"in_wishlist"`
}

// ContainsHandler handles wishlist membership queries
type ContainsHandler struct {
	wishlist domain.Repository
}

// NewContainsHandler creates a new wishlist membership handler
func NewContainsHandler(wishlist domain.Repository) *ContainsHandler {
	return &ContainsHandler{wishlist: wishlist}
}

// Handle executes the membership query
func (h *ContainsHandler) Handle(q ContainsQuery) (*ContainsResult, error) {
	if q.UserID == "" {
		return &ContainsResult{InWishlist: false}, nil
	}
	exists, err := h.wishlist.Exists(q.UserID, q.ProductID)
	if err != nil {
		return nil, err
	}
	return &ContainsResult{InWishlist: exists}, nil
}
