package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/internal/wishlist/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

type pair struct {
	userID    string
	productID uint
}

type memoryWishlistRepository struct {
	items []pair
}

func (r *memoryWishlistRepository) Create(item *domain.Item) error {
	r.items = append(r.items, pair{item.UserID, item.ProductID})
	return nil
}

func (r *memoryWishlistRepository) Delete(userID string, productID uint) error {
	kept := r.items[:0]
	for _, p := range r.items {
		if p.userID != userID || p.productID != productID {
			kept = append(kept, p)
		}
	}
	r.items = kept
	return nil
}

func (r *memoryWishlistRepository) FindProductIDs(userID string) ([]uint, error) {
	var ids []uint
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].userID == userID {
			ids = append(ids, r.items[i].productID)
		}
	}
	return ids, nil
}

func (r *memoryWishlistRepository) Exists(userID string, productID uint) (bool, error) {
	for _, p := range r.items {
		if p.userID == userID && p.productID == productID {
			return true, nil
		}
	}
	return false, nil
}

type stubProductFinder struct{}

func (stubProductFinder) FindProduct(productID uint) (*cartdomain.ProductSnapshot, error) {
	if productID > 10 {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	return &cartdomain.ProductSnapshot{ID: productID, Name: "Handloom Saree", Price: 4500}, nil
}

func TestAddItemSavesProduct(t *testing.T) {
	repo := &memoryWishlistRepository{}
	handler := NewAddItemHandler(repo, stubProductFinder{})

	item, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 3})
	require.NoError(t, err)
	assert.Equal(t, uint(3), item.ProductID)
}

func TestAddItemDuplicateConflicts(t *testing.T) {
	repo := &memoryWishlistRepository{}
	handler := NewAddItemHandler(repo, stubProductFinder{})

	_, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 3})
	require.NoError(t, err)

	_, err = handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 3})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestAddItemUnknownProduct(t *testing.T) {
	repo := &memoryWishlistRepository{}
	handler := NewAddItemHandler(repo, stubProductFinder{})

	_, err := handler.Handle(AddItemCommand{UserID: "user-1", ProductID: 42})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	repo := &memoryWishlistRepository{}
	add := NewAddItemHandler(repo, stubProductFinder{})
	remove := NewRemoveItemHandler(repo)

	_, err := add.Handle(AddItemCommand{UserID: "user-1", ProductID: 3})
	require.NoError(t, err)

	require.NoError(t, remove.Handle(RemoveItemCommand{UserID: "user-1", ProductID: 3}))
	require.NoError(t, remove.Handle(RemoveItemCommand{UserID: "user-1", ProductID: 3}))

	exists, err := repo.Exists("user-1", 3)
	require.NoError(t, err)
	assert.False(t, exists)
}
