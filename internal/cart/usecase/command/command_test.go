package command

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

func newMemoryCartRepository() *memoryCartRepository {
	return &memoryCartRepository{carts: make(map[string]*domain.Cart)}
}

func (r *memoryCartRepository) FindByUser(userID string) (*domain.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "cart not found")
	}
	copied := *cart
	copied.Items = append(domain.Items{}, cart.Items...)
	return &copied, nil
}

func (r *memoryCartRepository) Create(cart *domain.Cart) error {
	r.carts[cart.UserID] = cart
	return nil
}

func (r *memoryCartRepository) Save(cart *domain.Cart) error {
	r.carts[cart.UserID] = cart
	return nil
}

type stubProductFinder struct {
	products map[uint]*domain.ProductSnapshot
}

func (f *stubProductFinder) FindProduct(id uint) (*domain.ProductSnapshot, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	return product, nil
}

func testProductFinder() *stubProductFinder {
	return &stubProductFinder{products: map[uint]*domain.ProductSnapshot{
		1: {ID: 1, Name: "Madhubani Painting", Price: 2500, ImageURL: "https://img.test/1.jpg"},
		2: {ID: 2, Name: "Terracotta Vase", Price: 800},
	}}
}

func TestAddItemCreatesCart(t *testing.T) {
	repo := newMemoryCartRepository()
	handler := NewAddItemHandler(repo, testProductFinder())

	cart, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(1), cart.Items[0].ProductID)
	assert.Equal(t, "Madhubani Painting", cart.Items[0].Name)
	assert.Equal(t, 2500.0, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItemMergesQuantities(t *testing.T) {
	repo := newMemoryCartRepository()
	handler := NewAddItemHandler(repo, testProductFinder())

	_, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	cart, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	repo := newMemoryCartRepository()
	handler := NewAddItemHandler(repo, testProductFinder())

	cart, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	repo := newMemoryCartRepository()
	handler := NewAddItemHandler(repo, testProductFinder())

	_, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 99, Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestUpdateItemSetsAbsoluteQuantity(t *testing.T) {
	repo := newMemoryCartRepository()
	add := NewAddItemHandler(repo, testProductFinder())
	update := NewUpdateItemHandler(repo)

	_, err := add.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 4})
	require.NoError(t, err)

	cart, err := update.Handle(UpdateItemCommand{UserID: "user-1", ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateItemZeroRemovesLine(t *testing.T) {
	repo := newMemoryCartRepository()
	add := NewAddItemHandler(repo, testProductFinder())
	update := NewUpdateItemHandler(repo)

	_, err := add.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 4})
	require.NoError(t, err)

	cart, err := update.Handle(UpdateItemCommand{UserID: "user-1", ProductID: 1, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateItemNegativeQuantity(t *testing.T) {
	repo := newMemoryCartRepository()
	update := NewUpdateItemHandler(repo)

	_, err := update.Handle(UpdateItemCommand{UserID: "user-1", ProductID: 1, Quantity: -1})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	repo := newMemoryCartRepository()
	add := NewAddItemHandler(repo, testProductFinder())
	remove := NewRemoveItemHandler(repo)

	_, err := add.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	cart, err := remove.Handle(RemoveItemCommand{UserID: "user-1", ProductID: 1})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = remove.Handle(RemoveItemCommand{UserID: "user-1", ProductID: 1})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClearCartPreservesRow(t *testing.T) {
	repo := newMemoryCartRepository()
	add := NewAddItemHandler(repo, testProductFinder())
	clear := NewClearCartHandler(repo)

	_, err := add.Handle(AddItemCommand{UserID: "user-1", ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	cart, err := clear.Handle(ClearCartCommand{UserID: "user-1"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	stored, err := repo.FindByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func TestClearCartWithoutCart(t *testing.T) {
	repo := newMemoryCartRepository()
	clear := NewClearCartHandler(repo)

	cart, err := clear.Handle(ClearCartCommand{UserID: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, "nobody", cart.UserID)
	assert.Empty(t, cart.Items)
}
