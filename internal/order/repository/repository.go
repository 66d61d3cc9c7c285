package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// GormOrderRepository implements domain.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new order
func (r *GormOrderRepository) Create(order *domain.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindByID retrieves an order by id
func (r *GormOrderRepository) FindByID(id string) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindBySessionID retrieves an order by its checkout session id
func (r *GormOrderRepository) FindBySessionID(sessionID string) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.First(&order, "stripe_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, fmt.Errorf("failed to find order by session: %w", err)
	}
	return &order, nil
}

// FindByUser lists a user's orders, newest first
func (r *GormOrderRepository) FindByUser(userID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateSessionID backfills the checkout session id on a pending order
func (r *GormOrderRepository) UpdateSessionID(id, sessionID string) error {
	err := r.db.Model(&domain.Order{}).
		Where("id = ?", id).
		Update("stripe_session_id", sessionID).Error
	if err != nil {
		return fmt.Errorf("failed to update order session: %w", err)
	}
	return nil
}

// UpdateStatus transitions an order's status
func (r *GormOrderRepository) UpdateStatus(id, status string) error {
	err := r.db.Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// AutoMigrate creates the orders table
func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{})
}
