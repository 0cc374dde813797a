// internal/domain/order/entity.go
package order

import "time"

// Status represents the order status as reported by the server. The client
// never drives transitions; it only reflects what the server says.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists the canonical status values in progression order, with the
// terminal cancelled state last.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is one of the canonical status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanCancel reports whether an order in this status may still be cancelled.
// Cancellation is reachable from any non-terminal state.
func (s Status) CanCancel() bool {
	return s.Valid() && !s.Terminal()
}

// Item represents an order line item
type Item struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // Price per unit in cents
}

// Address represents the order's shipping address
type Address struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

// Order represents an order as returned by the server. Read-only from the
// client's perspective; status changes only in response to payment
// completion or admin action server-side.
type Order struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Status          Status    `json:"status"`
	Items           []Item    `json:"items"`
	ShippingAddress Address   `json:"shipping_address"`
	TotalAmount     int64     `json:"total_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetFormattedTotal returns total amount as a decimal amount
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// Delivery represents a shipment record tracked by the admin console
type Delivery struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Courier   string    `json:"courier"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID implements admin.Identifiable.
func (d Delivery) GetID() int64 { return d.ID }
