package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

type memoryCartRepository struct {
	carts map[string]*domain.Cart
}

func (r *memoryCartRepository) FindByUser(userID string) (*domain.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "cart not found")
	}
	return cart, nil
}

func (r *memoryCartRepository) Create(cart *domain.Cart) error {
	r.carts[cart.UserID] = cart
	return nil
}

func (r *memoryCartRepository) Save(cart *domain.Cart) error {
	r.carts[cart.UserID] = cart
	return nil
}

func TestGetCartReturnsStoredCart(t *testing.T) {
	repo := &memoryCartRepository{carts: map[string]*domain.Cart{
		"user-1": {UserID: "user-1", Items: domain.Items{{ProductID: 1, Quantity: 2}}},
	}}
	handler := NewGetCartHandler(repo)

	cart, err := handler.Handle(GetCartQuery{UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestGetCartSynthesizesEmptyCart(t *testing.T) {
	repo := &memoryCartRepository{carts: map[string]*domain.Cart{}}
	handler := NewGetCartHandler(repo)

	cart, err := handler.Handle(GetCartQuery{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}
