package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/artisy/storefront/internal/wishlist/domain"
)

// GormWishlistRepository implements domain.Repository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GORM wishlist repository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// Create persists a wishlist item
func (r *GormWishlistRepository) Create(item *domain.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}
	return nil
}

// Delete removes a wishlist item if it exists
func (r *GormWishlistRepository) Delete(userID string, productID uint) error {
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Item{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}
	return nil
}

// FindProductIDs returns the user's saved product ids, newest first
func (r *GormWishlistRepository) FindProductIDs(userID string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&domain.Item{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	return ids, nil
}

// Exists reports whether the user has saved the product
func (r *GormWishlistRepository) Exists(userID string, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Item{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist item: %w", err)
	}
	return count > 0, nil
}

// AutoMigrate creates the wishlist table
func (r *GormWishlistRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{})
}
