package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Item is a line item snapshot embedded in the cart, decoupled from the
// live product record.
type Item struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// Items is the cart's line-item list, stored as a single jsonb column and
// replaced wholesale on every mutation.
type Items []Item

// Value implements driver.Valuer for jsonb storage.
func (items Items) Value() (driver.Value, error) {
	if items == nil {
		items = Items{}
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner for jsonb storage.
func (items *Items) Scan(value interface{}) error {
	if value == nil {
		*items = Items{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return fmt.Errorf("unsupported cart items column type %T", value)
		}
	}
	return json.Unmarshal(data, items)
}

// Cart is the per-user cart aggregate. One row per user, created lazily on
// the first add.
type Cart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Items     Items     `json:"items" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Cart) TableName() string {
	return "carts"
}

// ProductSnapshot is the subset of a product captured into a new line item.
type ProductSnapshot struct {
	ID       uint
	Name     string
	Price    float64
	ImageURL string
}

// Repository defines the contract for cart data access. Save replaces the
// whole items array; concurrent mutations of the same cart are last writer
// wins, an accepted gap for a low-contention personal cart.
type Repository interface {
	FindByUser(userID string) (*Cart, error)
	Create(cart *Cart) error
	Save(cart *Cart) error
}

// ProductFinder resolves the product snapshot for a new line item.
type ProductFinder interface {
	FindProduct(productID uint) (*ProductSnapshot, error)
}
