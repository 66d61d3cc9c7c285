package command

import (
	"fmt"
	"time"

	"github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// AddItemCommand represents the command to add a product to the cart
type AddItemCommand struct {
	UserID    string
	ProductID uint
	Quantity  int
}

// AddItemHandler handles add item commands
type AddItemHandler struct {
	carts    domain.Repository
	products domain.ProductFinder
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts domain.Repository, products domain.ProductFinder) *AddItemHandler {
	return &AddItemHandler{carts: carts, products: products}
}

// Handle executes the add item command. An existing line for the product is
// incremented; otherwise a snapshot line is appended. The cart is created
// lazily on the first add.
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.Cart, error) {
	if cmd.ProductID == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "product ID is required")
	}
	quantity := cmd.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := h.products.FindProduct(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := h.carts.FindByUser(cmd.UserID)
	if err != nil {
		if !apperr.IsKind(err, apperr.NotFound) {
			return nil, err
		}
		cart = &domain.Cart{
			UserID: cmd.UserID,
			Items: domain.Items{{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				ImageURL:  product.ImageURL,
				Quantity:  quantity,
			}},
		}
		if err := h.carts.Create(cart); err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return cart, nil
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == cmd.ProductID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  quantity,
		})
	}

	cart.UpdatedAt = time.Now()
	if err := h.carts.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
