// internal/storage/storage.go

// Package storage provides the durable local snapshot store. Stores persist
// their last known state under well-known keys so a fresh process starts
// from the previous session's snapshot; the remote API, not this package,
// remains the source of truth for every entity.
package storage

import (
	"context"
	"errors"
)

// Well-known snapshot keys.
const (
	KeyToken           = "auth_token"
	KeyUser            = "auth_user"
	KeyCart            = "cart"
	KeyPendingCheckout = "pending_checkout"

	// KeyLegacyToken is the raw token key written by older client versions.
	// It is read once at session-store construction and then removed.
	KeyLegacyToken = "token"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// KV is a small durable key-value store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
