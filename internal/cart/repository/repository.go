package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/artisy/storefront/internal/cart/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Cart{})
}

func (r *GormCartRepository) FindByUser(userID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "cart not found")
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &cart, nil
}

func (r *GormCartRepository) Create(cart *domain.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *GormCartRepository) Save(cart *domain.Cart) error {
	if err := r.db.Save(cart).Error; err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
