// internal/domain/admin/collection.go

// Package admin implements the back-office resource stores: products,
// categories, discounts, comment moderation, deliveries and the sales
// report. Each store shares one collection core: FetchAll loads the whole
// collection into memory, and every mutation treats the server's response
// record as authoritative and merges only that record by id. A full refetch
// happens only on an explicit Refresh.
package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/pkg/event"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Identifiable is any admin resource addressed by a numeric id.
type Identifiable interface {
	GetID() int64
}

// SessionRevoker clears the local session. A 401 from any admin operation
// triggers it as a blanket recovery action; navigation away is left to the
// caller.
type SessionRevoker interface {
	Clear(ctx context.Context) error
}

// Collection is the shared cache/mutator core behind every admin resource
// store.
type Collection[T Identifiable] struct {
	client   *api.Client
	session  SessionRevoker
	notifier notify.Notifier

	name     string // resource name used in notifications
	listPath string

	items    []T
	err      string
	fetching bool
	mutating bool
	changes  event.Emitter[[]T]
}

// NewCollection builds the shared core for one admin resource
func NewCollection[T Identifiable](client *api.Client, session SessionRevoker, notifier notify.Notifier, name, listPath string) *Collection[T] {
	return &Collection[T]{
		client:   client,
		session:  session,
		notifier: notifier,
		name:     name,
		listPath: listPath,
	}
}

// Subscribe registers a handler invoked with the full collection after
// every replacement or merge.
func (c *Collection[T]) Subscribe(handler func([]T)) {
	c.changes.Subscribe(handler)
}

// Items returns the cached collection.
func (c *Collection[T]) Items() []T {
	return c.items
}

// Err returns the last operation's error message, or "".
func (c *Collection[T]) Err() string {
	return c.err
}

// Fetching reports whether a collection load is in flight.
func (c *Collection[T]) Fetching() bool {
	return c.fetching
}

// Mutating reports whether a mutation is in flight.
func (c *Collection[T]) Mutating() bool {
	return c.mutating
}

// Get returns the cached record with the given id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FetchAll loads the whole collection into memory, replacing the cache.
// There is no pagination; the admin collections are small.
func (c *Collection[T]) FetchAll(ctx context.Context) ([]T, error) {
	c.fetching = true
	defer func() { c.fetching = false }()

	var items []T
	if err := c.client.Do(ctx, "GET", c.listPath, nil, nil, &items); err != nil {
		c.fail(ctx, err, fmt.Sprintf("Could not load %s", c.name))
		return nil, fmt.Errorf("admin: fetch %s: %w", c.name, err)
	}

	if items == nil {
		items = []T{}
	}
	c.items = items
	c.err = ""
	c.changes.Emit(c.items)
	return items, nil
}

// Refresh is an explicit full refetch.
func (c *Collection[T]) Refresh(ctx context.Context) ([]T, error) {
	return c.FetchAll(ctx)
}

// mutate sends a mutation whose response carries the authoritative record
// and merges that single record into the cache.
func (c *Collection[T]) mutate(ctx context.Context, method, path string, query url.Values, body any, failMsg string) (*T, error) {
	c.mutating = true
	defer func() { c.mutating = false }()

	var record T
	if err := c.client.Do(ctx, method, path, query, body, &record); err != nil {
		c.fail(ctx, err, failMsg)
		return nil, err
	}

	c.merge(record)
	return &record, nil
}

// removeByID sends a deletion and drops the record from the cache on
// success.
func (c *Collection[T]) removeByID(ctx context.Context, method, path string, id int64, failMsg string) error {
	c.mutating = true
	defer func() { c.mutating = false }()

	if err := c.client.Do(ctx, method, path, nil, nil, nil); err != nil {
		c.fail(ctx, err, failMsg)
		return err
	}

	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.err = ""
	c.changes.Emit(c.items)
	return nil
}

// merge upserts a single authoritative record by id.
func (c *Collection[T]) merge(record T) {
	c.err = ""
	for i := range c.items {
		if c.items[i].GetID() == record.GetID() {
			c.items[i] = record
			c.changes.Emit(c.items)
			return
		}
	}
	c.items = append(c.items, record)
	c.changes.Emit(c.items)
}

// fail records the operation error and notifies. A 401 additionally forces
// a client-side sign-out.
func (c *Collection[T]) fail(ctx context.Context, err error, message string) {
	if api.IsUnauthorized(err) {
		_ = c.session.Clear(ctx)
		c.err = "Session expired"
		c.notifier.Error("Session expired, sign in again")
		return
	}

	switch {
	case api.IsConstraintViolation(err):
		c.err = fmt.Sprintf("%s: record is still referenced", message)
	case api.IsJWTExpired(err):
		c.err = "Session expired"
	default:
		c.err = message
	}
	c.notifier.Error(c.err)
}
