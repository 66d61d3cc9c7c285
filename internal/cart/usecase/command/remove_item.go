package command

import (
	"fmt"
	"time"

	"github.com/artisy/storefront/internal/cart/domain"
)

// RemoveItemCommand represents the command to remove a line item
type RemoveItemCommand struct {
	UserID    string
	ProductID uint
}

// RemoveItemHandler handles remove item commands
type RemoveItemHandler struct {
	carts domain.Repository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts domain.Repository) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command. Removing an absent item is a
// no-op, not an error.
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) (*domain.Cart, error) {
	cart, err := h.carts.FindByUser(cmd.UserID)
	if err != nil {
		return nil, err
	}

	items := make(domain.Items, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != cmd.ProductID {
			items = append(items, item)
		}
	}
	cart.Items = items

	cart.UpdatedAt = time.Now()
	if err := h.carts.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
