// internal/domain/order/store.go

// Package order covers checkout, the signed-in user's order history and the
// admin order list. Orders are value snapshots replaced on each fetch; the
// invoice is consumed as an opaque binary blob.
package order

import (
	"context"
	"fmt"
	"net/url"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/pkg/event"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Store caches orders and drives checkout
type Store struct {
	client   *api.Client
	notifier notify.Notifier

	orders  []Order
	err     string
	changes event.Emitter[[]Order]
}

// NewStore creates a new order store
func NewStore(client *api.Client, notifier notify.Notifier) *Store {
	return &Store{
		client:   client,
		notifier: notifier,
	}
}

// Subscribe registers a handler invoked with the full order list after
// every replacement.
func (s *Store) Subscribe(handler func([]Order)) {
	s.changes.Subscribe(handler)
}

// Orders returns the cached order list.
func (s *Store) Orders() []Order {
	return s.orders
}

// Err returns the last operation's error message, or "".
func (s *Store) Err() string {
	return s.err
}

// CheckoutRequest represents the create-order submission
type CheckoutRequest struct {
	ShippingAddress Address `json:"shipping_address"`
}

// Checkout creates an order from the current cart.
func (s *Store) Checkout(ctx context.Context, req *CheckoutRequest) (*Order, error) {
	if req.ShippingAddress.AddressLine1 == "" || req.ShippingAddress.City == "" {
		s.notifier.Error("Shipping address is required")
		return nil, fmt.Errorf("order: shipping address is required")
	}

	var created Order
	if err := s.client.Do(ctx, "POST", "/orders/create", nil, req, &created); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return nil, fmt.Errorf("order: checkout: %w", err)
	}

	s.err = ""
	s.notifier.Success("Order placed")
	return &created, nil
}

// CompletePayment reports payment completion for an order. The server owns
// the resulting status transition; the updated order is returned.
func (s *Store) CompletePayment(ctx context.Context, orderID int64) (*Order, error) {
	path := fmt.Sprintf("/orders/%d/complete-payment", orderID)

	var updated Order
	if err := s.client.Do(ctx, "POST", path, nil, nil, &updated); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return nil, fmt.Errorf("order: complete payment for %d: %w", orderID, err)
	}

	s.mergeOrder(updated)
	s.notifier.Success("Payment completed")
	return &updated, nil
}

// MyOrders fetches the signed-in user's orders, replacing the cached list.
func (s *Store) MyOrders(ctx context.Context) ([]Order, error) {
	return s.fetch(ctx, "/orders/my-orders")
}

// AllOrders fetches every order; admin only.
func (s *Store) AllOrders(ctx context.Context) ([]Order, error) {
	return s.fetch(ctx, "/orders/admin/all")
}

// Invoice downloads the order's invoice PDF as an opaque blob.
func (s *Store) Invoice(ctx context.Context, orderID int64) ([]byte, error) {
	path := fmt.Sprintf("/orders/%d/invoice", orderID)

	blob, err := s.client.DoRaw(ctx, "GET", path, nil)
	if err != nil {
		s.err = s.describe(err)
		s.notifier.Error("Could not download invoice")
		return nil, fmt.Errorf("order: invoice for %d: %w", orderID, err)
	}
	return blob, nil
}

// UpdateStatus asks the server to move an order to status; admin only.
// The status is validated client-side before any request is sent, and the
// server's response record is merged as authoritative.
func (s *Store) UpdateStatus(ctx context.Context, orderID int64, status Status) (*Order, error) {
	if !status.Valid() {
		s.notifier.Error("Unknown order status")
		return nil, fmt.Errorf("order: invalid status %q", status)
	}

	path := fmt.Sprintf("/orders/%d/update-status", orderID)
	query := url.Values{}
	query.Set("status", string(status))

	var updated Order
	if err := s.client.Do(ctx, "POST", path, query, nil, &updated); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return nil, fmt.Errorf("order: update status for %d: %w", orderID, err)
	}

	s.mergeOrder(updated)
	s.notifier.Success("Order status updated")
	return &updated, nil
}

func (s *Store) fetch(ctx context.Context, path string) ([]Order, error) {
	var orders []Order
	if err := s.client.Do(ctx, "GET", path, nil, nil, &orders); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return nil, fmt.Errorf("order: fetch %s: %w", path, err)
	}

	if orders == nil {
		orders = []Order{}
	}
	s.orders = orders
	s.err = ""
	s.changes.Emit(s.orders)
	return orders, nil
}

// mergeOrder upserts the server's response record into the cached list by
// id, instead of refetching the whole collection.
func (s *Store) mergeOrder(updated Order) {
	s.err = ""
	for i := range s.orders {
		if s.orders[i].ID == updated.ID {
			s.orders[i] = updated
			s.changes.Emit(s.orders)
			return
		}
	}
	s.orders = append(s.orders, updated)
	s.changes.Emit(s.orders)
}

func (s *Store) describe(err error) string {
	switch {
	case api.IsAuthError(err):
		return "Sign in to view your orders"
	case api.IsNotFound(err):
		return "Order not found"
	case api.IsJWTExpired(err):
		return "Session expired, sign in again"
	default:
		return "Order operation failed"
	}
}
