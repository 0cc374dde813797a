// internal/domain/catalog/entity.go
package catalog

import "time"

// Product represents a course listed on the marketplace
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"` // Price in cents
	Quantity     int       `json:"quantity"`
	CategoryID   int64     `json:"category_id"`
	Category     *Category `json:"category,omitempty"`
	Instructor   string    `json:"instructor"`
	Rating       float64   `json:"rating"`
	RatingCount  int       `json:"rating_count"`
	Discounted   bool      `json:"discounted"`
	DiscountRate int       `json:"discount_rate"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetFormattedPrice returns the price as a decimal amount
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}

// GetDiscountedPrice returns the price after the active discount
func (p *Product) GetDiscountedPrice() int64 {
	if !p.Discounted || p.DiscountRate <= 0 {
		return p.Price
	}
	return p.Price - p.Price*int64(p.DiscountRate)/100
}

// IsInStock reports whether seats remain for the course
func (p *Product) IsInStock() bool {
	return p.Quantity > 0
}

// Category represents a course category
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Comment represents a review left on a course
type Comment struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"` // 0-5
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// Discount represents an active product discount
type Discount struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Rate      int       `json:"rate"` // Percentage 0-100
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Active    bool      `json:"active"`
}

// GetID returns the entity identifier.
func (p Product) GetID() int64  { return p.ID }
func (c Category) GetID() int64 { return c.ID }
func (c Comment) GetID() int64  { return c.ID }
func (d Discount) GetID() int64 { return d.ID }

// SortOrder selects a course list ordering.
type SortOrder string

const (
	SortPriceAscending  SortOrder = "price-asc"
	SortPriceDescending SortOrder = "price-desc"
)
