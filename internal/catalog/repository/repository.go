package repository

import (
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) AutoMigrate() error {
	// The embedding column needs the pgvector extension in place first.
	if err := r.db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	return r.db.AutoMigrate(&domain.Product{}, &domain.Review{})
}

// Search applies the filter conjunctively and returns one page of products
// plus the total match count.
func (r *GormCatalogRepository) Search(filter domain.SearchFilter) ([]domain.Product, int64, error) {
	query := r.db.Model(&domain.Product{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR ? = ANY(tags)", pattern, pattern, filter.Query)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.ArtForm != "" {
		query = query.Where("art_form = ?", filter.ArtForm)
	}
	if filter.OriginState != "" {
		query = query.Where("origin_state = ?", filter.OriginState)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsHandmade != nil {
		query = query.Where("is_handmade = ?", *filter.IsHandmade)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	switch filter.SortBy {
	case domain.SortPriceAsc:
		query = query.Order("price ASC").Order("created_at DESC")
	case domain.SortPriceDesc:
		query = query.Order("price DESC").Order("created_at DESC")
	case domain.SortNewest:
		query = query.Order("created_at DESC")
	case domain.SortRating:
		query = query.Order("rating DESC").Order("created_at DESC")
	default:
		query = query.Order("is_featured DESC").Order("created_at DESC")
	}

	var products []domain.Product
	if err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	return products, total, nil
}

func (r *GormCatalogRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *GormCatalogRepository) FindFeatured(limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find featured products: %w", err)
	}
	return products, nil
}

// FilterOptions scans the whole catalog for distinct filter values. A full
// scan by construction; fine at this catalog scale.
func (r *GormCatalogRepository) FilterOptions() (*domain.FilterOptions, error) {
	options := &domain.FilterOptions{}

	columns := []struct {
		name string
		dest *[]string
	}{
		{"category", &options.Categories},
		{"subcategory", &options.Subcategories},
		{"art_form", &options.ArtForms},
		{"origin_state", &options.States},
	}

	for _, col := range columns {
		err := r.db.Model(&domain.Product{}).
			Distinct(col.name).
			Where(col.name+" IS NOT NULL AND "+col.name+" <> ''").
			Order(col.name).
			Pluck(col.name, col.dest).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load filter options: %w", err)
		}
	}
	return options, nil
}

// FindNearest returns products whose embedding cosine similarity to the
// query vector meets the threshold, nearest first.
func (r *GormCatalogRepository) FindNearest(embedding []float32, minSimilarity float64, limit int) ([]domain.Product, error) {
	vec := pgvector.NewVector(embedding)

	var products []domain.Product
	err := r.db.Raw(`
		SELECT * FROM products
		WHERE embedding IS NOT NULL
		  AND 1 - (embedding <=> ?) >= ?
		ORDER BY embedding <=> ?
		LIMIT ?`,
		vec, minSimilarity, vec, limit,
	).Scan(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to run similarity search: %w", err)
	}
	return products, nil
}

func (r *GormCatalogRepository) UpdateRating(productID uint, rating float64, reviewCount int) error {
	err := r.db.Model(&domain.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}
