package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

type memoryProductRepository struct {
	products map[uint]*domain.Product
}

func (r *memoryProductRepository) Search(filter domain.SearchFilter) ([]domain.Product, int64, error) {
	return nil, 0, nil
}

func (r *memoryProductRepository) FindByID(id uint) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	return product, nil
}

func (r *memoryProductRepository) FindFeatured(limit int) ([]domain.Product, error) {
	return nil, nil
}

func (r *memoryProductRepository) FilterOptions() (*domain.FilterOptions, error) {
	return &domain.FilterOptions{}, nil
}

func (r *memoryProductRepository) FindNearest(embedding []float32, minSimilarity float64, limit int) ([]domain.Product, error) {
	return nil, nil
}

func (r *memoryProductRepository) UpdateRating(productID uint, rating float64, reviewCount int) error {
	product, ok := r.products[productID]
	if !ok {
		return apperr.New(apperr.NotFound, "product not found")
	}
	product.Rating = rating
	product.ReviewCount = reviewCount
	return nil
}

type memoryReviewRepository struct {
	reviews []*domain.Review
}

func (r *memoryReviewRepository) Create(review *domain.Review) error {
	review.ID = uint(len(r.reviews) + 1)
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *memoryReviewRepository) FindByProductAndUser(productID uint, userID string) (*domain.Review, error) {
	for _, review := range r.reviews {
		if review.ProductID == productID && review.UserID == userID {
			return review, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "review not found")
}

func (r *memoryReviewRepository) FindByProduct(productID uint, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (r *memoryReviewRepository) ListRatings(productID uint) ([]int, error) {
	var ratings []int
	for _, review := range r.reviews {
		if review.ProductID == productID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func testRepositories() (*memoryProductRepository, *memoryReviewRepository) {
	products := &memoryProductRepository{products: map[uint]*domain.Product{
		1: {ID: 1, Name: "Warli Art Print", Price: 1200},
	}}
	return products, &memoryReviewRepository{}
}

func TestAddReview(t *testing.T) {
	products, reviews := testRepositories()
	handler := NewAddReviewHandler(products, reviews)

	review, err := handler.Handle(AddReviewCommand{
		ProductID:  1,
		UserID:     "user-1",
		Rating:     4,
		ReviewText: "Lovely detail",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	assert.Equal(t, 4.0, products.products[1].Rating)
	assert.Equal(t, 1, products.products[1].ReviewCount)
}

func TestAddReviewRatingAverageRoundsToOneDecimal(t *testing.T) {
	products, reviews := testRepositories()
	handler := NewAddReviewHandler(products, reviews)

	_, err := handler.Handle(AddReviewCommand{ProductID: 1, UserID: "user-1", Rating: 5})
	require.NoError(t, err)
	_, err = handler.Handle(AddReviewCommand{ProductID: 1, UserID: "user-2", Rating: 4})
	require.NoError(t, err)
	_, err = handler.Handle(AddReviewCommand{ProductID: 1, UserID: "user-3", Rating: 4})
	require.NoError(t, err)

	// (5+4+4)/3 = 4.333... -> 4.3
	assert.Equal(t, 4.3, products.products[1].Rating)
	assert.Equal(t, 3, products.products[1].ReviewCount)
}

func TestAddReviewDuplicateConflicts(t *testing.T) {
	products, reviews := testRepositories()
	handler := NewAddReviewHandler(products, reviews)

	_, err := handler.Handle(AddReviewCommand{ProductID: 1, UserID: "user-1", Rating: 5})
	require.NoError(t, err)

	_, err = handler.Handle(AddReviewCommand{ProductID: 1, UserID: "user-1", Rating: 2})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestAddReviewRatingBounds(t *testing.T) {
	products, reviews := testRepositories()
	handler := NewAddReviewHandler(products, reviews)

	for _, rating := range []int{0, 6, -1} {
		_, err := handler.Handle(AddReviewCommand{ProductID: 1, UserID: "user-1", Rating: rating})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
	}
}

func TestAddReviewRequiresUser(t *testing.T) {
	products, reviews := testRepositories()
	handler := NewAddReviewHandler(products, reviews)

	_, err := handler.Handle(AddReviewCommand{ProductID: 1, Rating: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))
}

func TestAddReviewUnknownProduct(t *testing.T) {
	products, reviews := testRepositories()
	handler := NewAddReviewHandler(products, reviews)

	_, err := handler.Handle(AddReviewCommand{ProductID: 99, UserID: "user-1", Rating: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
