package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Sort keys accepted by the catalog search.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortRating    = "rating"
)

// Product represents the product entity. Rating and ReviewCount are derived
// values, written only by the review command.
type Product struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"not null"`
	Description   string           `json:"description"`
	Price         float64          `json:"price" gorm:"not null"`
	OriginalPrice *float64         `json:"original_price,omitempty"`
	ImageURL      string           `json:"image_url"`
	Category      string           `json:"category" gorm:"index"`
	Subcategory   string           `json:"subcategory,omitempty"`
	ArtForm       string           `json:"art_form,omitempty"`
	OriginState   string           `json:"origin_state,omitempty"`
	Material      string           `json:"material,omitempty"`
	Dimensions    string           `json:"dimensions,omitempty"`
	ArtistName    string           `json:"artist_name,omitempty"`
	Tags          pq.StringArray   `json:"tags,omitempty" gorm:"type:text[]"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	StockQuantity int              `json:"stock_quantity"`
	IsFeatured    bool             `json:"is_featured" gorm:"index"`
	IsHandmade    bool             `json:"is_handmade"`
	Embedding     *pgvector.Vector `json:"-" gorm:"type:vector(1536)"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Review represents a product review. One review per (product, user).
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_reviews_product_user"`
	UserID     string    `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_product_user"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText string    `json:"review_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// SearchFilter holds the optional predicates of a catalog search. All
// predicates are conjunctive.
type SearchFilter struct {
	Query       string
	Category    string
	Subcategory string
	ArtForm     string
	OriginState string
	MinPrice    *float64
	MaxPrice    *float64
	IsFeatured  *bool
	IsHandmade  *bool
	SortBy      string
	Limit       int
	Offset      int
}

// FilterOptions lists the distinct non-empty filter values across the
// catalog.
type FilterOptions struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
	ArtForms      []string `json:"artForms"`
	States        []string `json:"states"`
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Search(filter SearchFilter) ([]Product, int64, error)
	FindByID(id uint) (*Product, error)
	FindFeatured(limit int) ([]Product, error)
	FilterOptions() (*FilterOptions, error)
	FindNearest(embedding []float32, minSimilarity float64, limit int) ([]Product, error)
	UpdateRating(productID uint, rating float64, reviewCount int) error
}

// ReviewRepository defines the contract for review data access
type ReviewRepository interface {
	Create(review *Review) error
	FindByProductAndUser(productID uint, userID string) (*Review, error)
	FindByProduct(productID uint, limit, offset int) ([]Review, error)
	ListRatings(productID uint) ([]int, error)
}
