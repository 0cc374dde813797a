// internal/session/store_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coursemarket-client/internal/apitest"
	"github.com/your-org/coursemarket-client/internal/storage"
)

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), kv)
	require.NoError(t, err)
	return store
}

func tempKV(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return kv
}

func TestTokenSurvivesReinstantiation(t *testing.T) {
	ctx := context.Background()
	kv := tempKV(t)

	first := newTestStore(t, kv)
	user := &User{ID: 7, Email: "student@example.com", FirstName: "Ada"}
	require.NoError(t, first.SetSession(ctx, "token-abc", user))
	assert.Equal(t, "token-abc", first.Token())

	// Simulated reload: a new store over the same storage.
	second := newTestStore(t, kv)
	assert.Equal(t, "token-abc", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "student@example.com", second.User().Email)
	assert.True(t, second.Authenticated())
}

func TestClearRemovesTokenAndProfileTogether(t *testing.T) {
	ctx := context.Background()
	kv := tempKV(t)

	store := newTestStore(t, kv)
	require.NoError(t, store.SetSession(ctx, "token-abc", &User{ID: 7}))
	require.NoError(t, store.Clear(ctx))

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())

	reloaded := newTestStore(t, kv)
	assert.Empty(t, reloaded.Token())
	assert.Nil(t, reloaded.User())
}

func TestLegacyTokenKeyIsMigratedOnce(t *testing.T) {
	ctx := context.Background()
	kv := tempKV(t)

	// An older client version left the token under the raw legacy key.
	require.NoError(t, kv.Put(ctx, storage.KeyLegacyToken, []byte("legacy-token")))

	store := newTestStore(t, kv)
	assert.Equal(t, "legacy-token", store.Token())

	// The legacy key is gone; the store's own key holds the token.
	_, err := kv.Get(ctx, storage.KeyLegacyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	migrated, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("legacy-token"), migrated)
}

func TestLegacyTokenDoesNotOverrideStoreToken(t *testing.T) {
	ctx := context.Background()
	kv := tempKV(t)

	require.NoError(t, kv.Put(ctx, storage.KeyToken, []byte("current")))
	require.NoError(t, kv.Put(ctx, storage.KeyLegacyToken, []byte("stale")))

	store := newTestStore(t, kv)
	assert.Equal(t, "current", store.Token())

	_, err := kv.Get(ctx, storage.KeyLegacyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExpiredReadsJWTClaims(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	store := newTestStore(t, tempKV(t))
	require.NoError(t, store.SetSession(ctx, apitest.MintToken(7, time.Hour), nil))
	assert.False(t, store.Expired(now))
	assert.True(t, store.Expired(now.Add(2*time.Hour)))
}

func TestExpiredIgnoresOpaqueTokens(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t, tempKV(t))
	require.NoError(t, store.SetSession(ctx, "not-a-jwt", nil))
	assert.False(t, store.Expired(time.Now()))
}

func TestPendingCheckoutConsumedOnce(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t, tempKV(t))
	assert.False(t, store.ConsumePendingCheckout(ctx))

	require.NoError(t, store.SetPendingCheckout(ctx))
	assert.True(t, store.ConsumePendingCheckout(ctx))
	assert.False(t, store.ConsumePendingCheckout(ctx))
}

func TestSubscribeSeesSnapshots(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t, tempKV(t))

	var snapshots []Snapshot
	store.Subscribe(func(s Snapshot) { snapshots = append(snapshots, s) })

	require.NoError(t, store.SetSession(ctx, "token-abc", &User{ID: 7}))
	require.NoError(t, store.Clear(ctx))

	require.Len(t, snapshots, 2)
	assert.True(t, snapshots[0].Authenticated())
	assert.False(t, snapshots[1].Authenticated())
}
