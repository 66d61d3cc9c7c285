package command

import (
	"fmt"
	"time"

	"github.com/artisy/storefront/pkg/apperr"

	"github.com/artisy/storefront/internal/cart/domain"
)

// ClearCartCommand represents the command to empty a user's cart
type ClearCartCommand struct {
	UserID string
}

// ClearCartHandler handles clear cart commands
type ClearCartHandler struct {
	carts domain.Repository
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(carts domain.Repository) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle empties the cart while keeping the row. Clearing a cart that was
// never created succeeds and returns an empty cart.
func (h *ClearCartHandler) Handle(cmd ClearCartCommand) (*domain.Cart, error) {
	cart, err := h.carts.FindByUser(cmd.UserID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return &domain.Cart{UserID: cmd.UserID, Items: domain.Items{}}, nil
		}
		return nil, err
	}

	cart.Items = domain.Items{}
	cart.UpdatedAt = time.Now()
	if err := h.carts.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
