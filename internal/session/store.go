// internal/session/store.go

// Package session owns the bearer-token lifecycle and the cached user
// profile. The store is the single writer of the persisted session keys;
// older client versions also wrote the token under a raw legacy key, which
// is imported once at construction and then deleted.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/your-org/coursemarket-client/internal/pkg/event"
	"github.com/your-org/coursemarket-client/internal/storage"
)

// Store holds the session and persists it across restarts
type Store struct {
	kv      storage.KV
	token   string
	user    *User
	changes event.Emitter[Snapshot]
}

// NewStore creates a session store over kv, restoring any persisted session
func NewStore(ctx context.Context, kv storage.KV) (*Store, error) {
	s := &Store{kv: kv}

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	if err := s.migrateLegacyToken(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe registers a handler invoked with the full session snapshot
// after every change.
func (s *Store) Subscribe(handler func(Snapshot)) {
	s.changes.Subscribe(handler)
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	return s.token
}

// User returns the cached profile, or nil when signed out.
func (s *Store) User() *User {
	return s.user
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.token != ""
}

// SetSession stores the token and profile together and persists both.
// They are never written independently, so a reload can not observe a
// token without its profile.
func (s *Store) SetSession(ctx context.Context, token string, user *User) error {
	if token == "" {
		return fmt.Errorf("session: token is required")
	}

	if err := s.kv.Put(ctx, storage.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	if user != nil {
		encoded, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("session: marshal user: %w", err)
		}
		if err := s.kv.Put(ctx, storage.KeyUser, encoded); err != nil {
			return fmt.Errorf("session: persist user: %w", err)
		}
	}

	s.token = token
	s.user = user
	s.changes.Emit(Snapshot{Token: s.token, User: s.user})
	return nil
}

// Clear removes the token and profile together, in memory and on disk.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("session: clear token: %w", err)
	}
	if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("session: clear user: %w", err)
	}

	s.token = ""
	s.user = nil
	s.changes.Emit(Snapshot{})
	return nil
}

// Expired reports whether the stored token is a JWT whose expiry has
// passed. The claim is read without signature verification; the server
// remains the authority and opaque tokens are never reported expired.
func (s *Store) Expired(now time.Time) bool {
	if s.token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Time.Before(now)
}

// SetPendingCheckout records that the user attempted checkout while signed
// out, so the flow can resume after sign-in.
func (s *Store) SetPendingCheckout(ctx context.Context) error {
	if err := s.kv.Put(ctx, storage.KeyPendingCheckout, []byte("1")); err != nil {
		return fmt.Errorf("session: set pending checkout: %w", err)
	}
	return nil
}

// ConsumePendingCheckout reports and clears the pending-checkout flag in
// one step; a second call returns false.
func (s *Store) ConsumePendingCheckout(ctx context.Context) bool {
	if _, err := s.kv.Get(ctx, storage.KeyPendingCheckout); err != nil {
		return false
	}
	_ = s.kv.Delete(ctx, storage.KeyPendingCheckout)
	return true
}

func (s *Store) restore(ctx context.Context) error {
	token, err := s.kv.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: restore token: %w", err)
	}
	s.token = string(token)

	encoded, err := s.kv.Get(ctx, storage.KeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: restore user: %w", err)
	}

	var user User
	if err := json.Unmarshal(encoded, &user); err != nil {
		// A corrupt profile blob should not lock the user out; the
		// profile is refetched on the next sign-in.
		return nil
	}
	s.user = &user
	return nil
}

// migrateLegacyToken imports the raw token key written by older client
// versions, then deletes it so this store stays the only writer.
func (s *Store) migrateLegacyToken(ctx context.Context) error {
	legacy, err := s.kv.Get(ctx, storage.KeyLegacyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: read legacy token: %w", err)
	}

	if s.token == "" && len(legacy) > 0 {
		if err := s.kv.Put(ctx, storage.KeyToken, legacy); err != nil {
			return fmt.Errorf("session: migrate legacy token: %w", err)
		}
		s.token = string(legacy)
	}
	if err := s.kv.Delete(ctx, storage.KeyLegacyToken); err != nil {
		return fmt.Errorf("session: remove legacy token: %w", err)
	}
	return nil
}
