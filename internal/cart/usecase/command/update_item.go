package command

import (
	"fmt"
	"time"

	"github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// UpdateItemCommand represents the command to set a line item's quantity
type UpdateItemCommand struct {
	UserID    string
	ProductID uint
	Quantity  int
}

// UpdateItemHandler handles update item commands
type UpdateItemHandler struct {
	carts domain.Repository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(carts domain.Repository) *UpdateItemHandler {
	return &UpdateItemHandler{carts: carts}
}

// Handle executes the update item command. Quantity is set absolutely;
// zero removes the line instead of storing a zero-quantity item.
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.Cart, error) {
	if cmd.Quantity < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "quantity must not be negative")
	}

	cart, err := h.carts.FindByUser(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Quantity == 0 {
		items := make(domain.Items, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.ProductID != cmd.ProductID {
				items = append(items, item)
			}
		}
		cart.Items = items
	} else {
		for i := range cart.Items {
			if cart.Items[i].ProductID == cmd.ProductID {
				cart.Items[i].Quantity = cmd.Quantity
				break
			}
		}
	}

	cart.UpdatedAt = time.Now()
	if err := h.carts.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
