package query

import (
	"github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// GetCartQuery represents the query to fetch a user's cart
type GetCartQuery struct {
	UserID string
}

// GetCartHandler handles get cart queries
type GetCartHandler struct {
	repo domain.Repository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(repo domain.Repository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

// Handle executes the get cart query. A missing cart is synthesized as an
// empty one, never a not-found error.
func (h *GetCartHandler) Handle(q GetCartQuery) (*domain.Cart, error) {
	cart, err := h.repo.FindByUser(q.UserID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return &domain.Cart{UserID: q.UserID, Items: domain.Items{}}, nil
		}
		return nil, err
	}
	return cart, nil
}
