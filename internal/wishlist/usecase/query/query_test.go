package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisy/storefront/internal/wishlist/domain"
)

type memoryWishlistRepository struct {
	byUser map[string][]uint
}

func (r *memoryWishlistRepository) Create(item *domain.Item) error {
	r.byUser[item.UserID] = append(r.byUser[item.UserID], item.ProductID)
	return nil
}

func (r *memoryWishlistRepository) Delete(userID string, productID uint) error {
	return nil
}

func (r *memoryWishlistRepository) FindProductIDs(userID string) ([]uint, error) {
	return r.byUser[userID], nil
}

func (r *memoryWishlistRepository) Exists(userID string, productID uint) (bool, error) {
	for _, id := range r.byUser[userID] {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func TestListWishlistEmptyIsNotNil(t *testing.T) {
	repo := &memoryWishlistRepository{byUser: map[string][]uint{}}
	handler := NewListWishlistHandler(repo)

	result, err := handler.Handle(ListWishlistQuery{UserID: "user-1"})
	require.NoError(t, err)
	assert.NotNil(t, result.ProductIDs)
	assert.Empty(t, result.ProductIDs)
}

func TestContainsForMember(t *testing.T) {
	repo := &memoryWishlistRepository{byUser: map[string][]uint{"user-1": {5}}}
	handler := NewContainsHandler(repo)

	result, err := handler.Handle(ContainsQuery{UserID: "user-1", ProductID: 5})
	require.NoError(t, err)
	assert.True(t, result.InWishlist)
}

func TestContainsAnonymousIsFalse(t *testing.T) {
	repo := &memoryWishlistRepository{byUser: map[string][]uint{"user-1": {5}}}
	handler := NewContainsHandler(repo)

	result, err := handler.Handle(ContainsQuery{UserID: "", ProductID: 5})
	require.NoError(t, err)
	assert.False(t, result.InWishlist)
}
