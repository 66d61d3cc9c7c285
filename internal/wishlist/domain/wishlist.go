package domain

import "time"

// Item is a single saved product on a user's wishlist. The user and
// product pair is unique.
type Item struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "wishlist_items"
}

// Repository defines the interface for wishlist persistence
type Repository interface {
	Create(item *Item) error
	Delete(userID string, productID uint) error
	FindProductIDs(userID string) ([]uint, error)
	Exists(userID string, productID uint) (bool, error)
}
