package repository

import (
	catalogdomain "github.com/artisy/storefront/internal/catalog/domain"

	"github.com/artisy/storefront/internal/cart/domain"
)

// CatalogProductFinder adapts the catalog repository to the cart's
// snapshot lookup.
type CatalogProductFinder struct {
	products catalogdomain.ProductRepository
}

func NewCatalogProductFinder(products catalogdomain.ProductRepository) *CatalogProductFinder {
	return &CatalogProductFinder{products: products}
}

func (f *CatalogProductFinder) FindProduct(productID uint) (*domain.ProductSnapshot, error) {
	product, err := f.products.FindByID(productID)
	if err != nil {
		return nil, err
	}
	return &domain.ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
	}, nil
}
