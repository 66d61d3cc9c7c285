package command

import (
	"github.com/artisy/storefront/pkg/apperr"

	cartdomain "github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/internal/wishlist/domain"
)

// AddItemCommand represents the command to save a product to the wishlist
type AddItemCommand struct {
	UserID    string
	ProductID uint
}

// AddItemHandler handles add wishlist item commands
type AddItemHandler struct {
	wishlist domain.Repository
	products cartdomain.ProductFinder
}

// NewAddItemHandler creates a new add wishlist item handler
func NewAddItemHandler(wishlist domain.Repository, products cartdomain.ProductFinder) *AddItemHandler {
	return &AddItemHandler{wishlist: wishlist, products: products}
}

// Handle executes the add wishlist item command
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.Item, error) {
	if cmd.ProductID == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "product id is required")
	}

	if _, err := h.products.FindProduct(cmd.ProductID); err != nil {
		return nil, err
	}

	exists, err := h.wishlist.Exists(cmd.UserID, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "product is already in your wishlist")
	}

	item := &domain.Item{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
	}
	if err := h.wishlist.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}
