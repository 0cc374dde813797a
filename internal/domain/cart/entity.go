// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
)

// Item represents a cart line item with its embedded product snapshot
type Item struct {
	ID         int64           `json:"id"`
	Product    catalog.Product `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice int64           `json:"total_price"`
}

// Cart represents the server-authoritative cart aggregate. A nil ID means
// no cart exists server-side yet; one is created implicitly by the first
// add-item call.
type Cart struct {
	ID          *int64 `json:"id"`
	Items       []Item `json:"items"`
	TotalAmount int64  `json:"total_amount"`
}

// Empty returns the empty-cart sentinel.
func Empty() Cart {
	return Cart{ID: nil, Items: []Item{}, TotalAmount: 0}
}

// ItemCount returns the number of line items.
func (c Cart) ItemCount() int {
	return len(c.Items)
}

// State is the cart store's lifecycle state.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// Snapshot is the full store state published to subscribers.
type Snapshot struct {
	State State
	Cart  Cart
	Err   string
}
