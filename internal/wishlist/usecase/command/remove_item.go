package command

import "github.com/artisy/storefront/internal/wishlist/domain"

// RemoveItemCommand represents the command to remove a product from the wishlist
type RemoveItemCommand struct {
	UserID    string
	ProductID uint
}

// RemoveItemHandler handles remove wishlist item commands
type RemoveItemHandler struct {
	wishlist domain.Repository
}

// NewRemoveItemHandler creates a new remove wishlist item handler
func NewRemoveItemHandler(wishlist domain.Repository) *RemoveItemHandler {
	return &RemoveItemHandler{wishlist: wishlist}
}

// Handle removes the product from the wishlist. Removing a product that
// was never saved succeeds.
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) error {
	return h.wishlist.Delete(cmd.UserID, cmd.ProductID)
}
