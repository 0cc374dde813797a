// internal/domain/wishlist/store.go

// Package wishlist mirrors the cart pattern for the user's saved courses:
// each mutation calls the server and replaces the full item collection with
// the server's response instead of patching locally.
package wishlist

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/pkg/event"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Item represents a wishlist entry
type Item struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	ProductID int64            `json:"product_id"`
	Product   *catalog.Product `json:"product,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

// Store caches and mutates the user's wishlist
type Store struct {
	client   *api.Client
	notifier notify.Notifier

	userID  int64
	items   []Item
	err     string
	changes event.Emitter[[]Item]
}

// NewStore creates a wishlist store scoped to userID
func NewStore(client *api.Client, userID int64, notifier notify.Notifier) *Store {
	return &Store{
		client:   client,
		userID:   userID,
		notifier: notifier,
	}
}

// Subscribe registers a handler invoked with the full item collection after
// every replacement.
func (s *Store) Subscribe(handler func([]Item)) {
	s.changes.Subscribe(handler)
}

// Items returns the cached wishlist.
func (s *Store) Items() []Item {
	return s.items
}

// Err returns the last operation's error message, or "".
func (s *Store) Err() string {
	return s.err
}

// Contains reports whether productID is on the wishlist.
func (s *Store) Contains(productID int64) bool {
	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Load fetches the user's wishlist, replacing the cached collection.
func (s *Store) Load(ctx context.Context) error {
	path := fmt.Sprintf("/wishlist/%d", s.userID)

	var items []Item
	if err := s.client.Do(ctx, "GET", path, nil, nil, &items); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return fmt.Errorf("wishlist: load: %w", err)
	}

	s.replace(items)
	return nil
}

// Add saves a course to the wishlist and replaces the collection with the
// server's response.
func (s *Store) Add(ctx context.Context, productID int64) error {
	query := url.Values{}
	query.Set("productId", strconv.FormatInt(productID, 10))

	var items []Item
	if err := s.client.Do(ctx, "POST", "/wishlist/add", query, nil, &items); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return fmt.Errorf("wishlist: add %d: %w", productID, err)
	}

	s.replace(items)
	s.notifier.Success("Added to wishlist")
	return nil
}

// Remove drops a course from the wishlist and replaces the collection with
// the server's response.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/wishlist/%d/items/%d", s.userID, productID)

	var items []Item
	if err := s.client.Do(ctx, "DELETE", path, nil, nil, &items); err != nil {
		s.err = s.describe(err)
		s.notifier.Error(s.err)
		return fmt.Errorf("wishlist: remove %d: %w", productID, err)
	}

	s.replace(items)
	s.notifier.Success("Removed from wishlist")
	return nil
}

func (s *Store) replace(items []Item) {
	if items == nil {
		items = []Item{}
	}
	s.items = items
	s.err = ""
	s.changes.Emit(s.items)
}

func (s *Store) describe(err error) string {
	switch {
	case api.IsAuthError(err):
		return "Sign in to use your wishlist"
	case api.IsNotFound(err):
		return "Wishlist not found"
	default:
		return "Wishlist operation failed"
	}
}
