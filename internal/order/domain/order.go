package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order status values
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// Item is a purchased line frozen at checkout time
type Item struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Items is a jsonb column of order lines
type Items []Item

// Value implements driver.Valuer
func (i Items) Value() (driver.Value, error) {
	if i == nil {
		i = Items{}
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner
func (i *Items) Scan(value interface{}) error {
	if value == nil {
		*i = Items{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan order items: expected []byte, got %T", value)
	}
	return json.Unmarshal(b, i)
}

// Order represents a checkout attempt and its lifecycle. Guest checkouts
// have a nil UserID and are looked up by session id only.
type Order struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID          *string   `json:"user_id,omitempty" gorm:"index"`
	Email           string    `json:"email" gorm:"not null"`
	StripeSessionID string    `json:"stripe_session_id,omitempty" gorm:"index"`
	Amount          float64   `json:"amount" gorm:"not null"`
	Status          string    `json:"status" gorm:"not null;default:'pending'"`
	Items           Items     `json:"items" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// Repository defines the interface for order persistence
type Repository interface {
	Create(order *Order) error
	FindByID(id string) (*Order, error)
	FindBySessionID(sessionID string) (*Order, error)
	FindByUser(userID string) ([]Order, error)
	UpdateSessionID(id, sessionID string) error
	UpdateStatus(id, status string) error
}

// CheckoutSessionRequest carries what the payment provider needs to open
// a hosted checkout page.
type CheckoutSessionRequest struct {
	OrderID string
	UserID  string
	Email   string
	Items   Items
}

// CheckoutSession is the provider's hosted page reference
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutGateway abstracts the payment provider
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}
