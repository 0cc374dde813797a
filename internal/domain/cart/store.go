// internal/domain/cart/store.go

// Package cart keeps the client-side copy of the server-authoritative cart
// aggregate. Every mutation is a direct server call followed by wholesale
// replacement of the local state with the server's response; there is no
// optimistic phase and nothing to roll back. A snapshot is persisted locally
// so a fresh process shows the last known cart instantly.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/pkg/event"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
	"github.com/your-org/coursemarket-client/internal/storage"
)

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource func() string

// Store caches and mutates the cart aggregate
type Store struct {
	client   *api.Client
	kv       storage.KV
	token    TokenSource
	notifier notify.Notifier

	state   State
	cart    Cart
	err     string
	changes event.Emitter[Snapshot]
}

// NewStore creates a cart store, restoring the persisted snapshot if one
// exists
func NewStore(ctx context.Context, client *api.Client, kv storage.KV, token TokenSource, notifier notify.Notifier) *Store {
	s := &Store{
		client:   client,
		kv:       kv,
		token:    token,
		notifier: notifier,
		state:    StateEmpty,
		cart:     Empty(),
	}
	s.restore(ctx)
	return s
}

// Subscribe registers a handler invoked with the full store snapshot after
// every state change.
func (s *Store) Subscribe(handler func(Snapshot)) {
	s.changes.Subscribe(handler)
}

// Cart returns the cached cart aggregate.
func (s *Store) Cart() Cart {
	return s.cart
}

// State returns the store's lifecycle state.
func (s *Store) State() State {
	return s.state
}

// Err returns the last operation's error message, or "".
func (s *Store) Err() string {
	return s.err
}

// Load fetches the current cart and replaces local state with the server's
// copy. On failure the stale cart is left untouched and only the state and
// error fields change.
func (s *Store) Load(ctx context.Context) error {
	s.setState(StateLoading, "")

	var fetched Cart
	if err := s.client.Do(ctx, "GET", "/carts/my-cart", nil, nil, &fetched); err != nil {
		s.setState(StateError, s.describe(err))
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: load: %w", err)
	}

	s.replace(ctx, fetched)
	return nil
}

// AddItem adds a course to the cart. The server returns the new full cart,
// which replaces local state; a first add creates the cart server-side.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	query := url.Values{}
	query.Set("productId", strconv.FormatInt(productID, 10))
	query.Set("quantity", strconv.Itoa(quantity))

	var updated Cart
	if err := s.client.Do(ctx, "POST", "/carts/add-item", query, nil, &updated); err != nil {
		s.setState(StateError, s.describe(err))
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: add item %d: %w", productID, err)
	}

	s.replace(ctx, updated)
	s.notifier.Success("Added to cart")
	return nil
}

// RemoveItem removes a course from the cart. It requires a signed-in
// session and an existing server-side cart; otherwise it aborts without
// issuing any network call. The DELETE response is not trusted as the new
// cart shape, so the full cart is re-fetched afterwards.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	if s.token() == "" {
		s.err = "Sign in to manage your cart"
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: authentication required")
	}
	if s.cart.ID == nil {
		s.err = "No active cart"
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: no active cart")
	}

	path := fmt.Sprintf("/carts/%d/items/%d", *s.cart.ID, productID)
	if err := s.client.Do(ctx, "DELETE", path, nil, nil, nil); err != nil {
		s.setState(StateError, s.describe(err))
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: remove item %d: %w", productID, err)
	}

	if err := s.Load(ctx); err != nil {
		return err
	}
	s.notifier.Success("Removed from cart")
	return nil
}

// Clear empties the cart. Local state is reset to the empty sentinel no
// matter what shape the server's response takes.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Do(ctx, "DELETE", "/carts/clear", nil, nil, nil); err != nil {
		s.setState(StateError, s.describe(err))
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: clear: %w", err)
	}

	s.replace(ctx, Empty())
	s.notifier.Success("Cart cleared")
	return nil
}

// transferRequest carries the pre-login cart items to the merge endpoint.
type transferRequest struct {
	Items []transferItem `json:"items"`
}

type transferItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// TransferGuestCart merges a pre-login cart into the signed-in user's
// server-side cart. Call it when a token becomes present while a non-empty
// cart exists locally; the merge semantics are the server's, and the merged
// result replaces local state.
func (s *Store) TransferGuestCart(ctx context.Context) error {
	if s.token() == "" {
		return fmt.Errorf("cart: authentication required")
	}
	if len(s.cart.Items) == 0 {
		return nil
	}

	req := transferRequest{}
	for _, item := range s.cart.Items {
		req.Items = append(req.Items, transferItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	var merged Cart
	if err := s.client.Do(ctx, "POST", "/carts/transfer", nil, &req, &merged); err != nil {
		s.setState(StateError, s.describe(err))
		s.notifier.Error(s.err)
		return fmt.Errorf("cart: transfer guest cart: %w", err)
	}

	s.replace(ctx, merged)
	return nil
}

// replace installs cart as the new authoritative state and persists it.
func (s *Store) replace(ctx context.Context, cart Cart) {
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	s.cart = cart
	s.err = ""
	if len(cart.Items) == 0 && cart.ID == nil {
		s.state = StateEmpty
	} else {
		s.state = StateLoaded
	}
	s.persist(ctx)
	s.changes.Emit(Snapshot{State: s.state, Cart: s.cart, Err: s.err})
}

func (s *Store) setState(state State, errMsg string) {
	s.state = state
	s.err = errMsg
	if errMsg != "" || state == StateLoading {
		s.changes.Emit(Snapshot{State: s.state, Cart: s.cart, Err: s.err})
	}
}

// describe maps an API failure onto the cart error taxonomy.
func (s *Store) describe(err error) string {
	switch {
	case api.IsAuthError(err):
		return "Sign in to manage your cart"
	case api.IsNotFound(err):
		return "No active cart"
	default:
		return "Cart operation failed"
	}
}

func (s *Store) persist(ctx context.Context) {
	encoded, err := json.Marshal(s.cart)
	if err != nil {
		return
	}
	// The snapshot is a cache, not a source of truth; a failed write only
	// costs the instant-reload behavior.
	_ = s.kv.Put(ctx, storage.KeyCart, encoded)
}

func (s *Store) restore(ctx context.Context) {
	encoded, err := s.kv.Get(ctx, storage.KeyCart)
	if errors.Is(err, storage.ErrNotFound) || err != nil {
		return
	}

	var cached Cart
	if err := json.Unmarshal(encoded, &cached); err != nil {
		return
	}
	if cached.Items == nil {
		cached.Items = []Item{}
	}
	s.cart = cached
	if len(cached.Items) > 0 || cached.ID != nil {
		s.state = StateLoaded
	}
}
