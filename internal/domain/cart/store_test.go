// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/apitest"
	"github.com/your-org/coursemarket-client/internal/config"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
	"github.com/your-org/coursemarket-client/internal/storage"
)

type fixture struct {
	server   *apitest.Server
	store    *Store
	kv       storage.KV
	client   *api.Client
	recorder *notify.Recorder
	token    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := apitest.New()
	t.Cleanup(server.Close)
	server.SeedProducts([]catalog.Product{
		{ID: 1, Name: "Go Basics", Price: 4900},
		{ID: 2, Name: "Advanced SQL", Price: 7900},
		{ID: 3, Name: "Kubernetes", Price: 12900},
	})

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.API.BaseURL = server.BaseURL()

	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	f := &fixture{server: server, kv: kv, recorder: notify.NewRecorder()}
	f.client = api.NewClient(cfg, func() string { return f.token }, logger)
	f.store = NewStore(context.Background(), f.client, kv, func() string { return f.token }, f.recorder)
	return f
}

func TestAddItemTracksServerCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	assert.Equal(t, 1, f.store.Cart().ItemCount())

	require.NoError(t, f.store.AddItem(ctx, 2, 2))
	assert.Equal(t, 2, f.store.Cart().ItemCount())

	// Adding the same course again merges server-side into one line item.
	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	assert.Equal(t, 2, f.store.Cart().ItemCount())

	assert.Equal(t, StateLoaded, f.store.State())
	assert.NotNil(t, f.store.Cart().ID)
	assert.Equal(t, int64(4900*2+7900*2), f.store.Cart().TotalAmount)
}

func TestRemoveItemWithoutTokenShortCircuits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"
	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	before := f.store.Cart()

	f.token = ""
	err := f.store.RemoveItem(ctx, 1)
	require.Error(t, err)

	assert.Equal(t, 0, f.server.Calls("DELETE /carts/:cartId/items/:productId"))
	assert.Equal(t, before, f.store.Cart())
	assert.NotEmpty(t, f.recorder.Errors())
}

func TestRemoveItemWithoutCartIDShortCircuits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	err := f.store.RemoveItem(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, 0, f.server.Calls("DELETE /carts/:cartId/items/:productId"))
}

func TestRemoveItemRefetchesFullCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	require.NoError(t, f.store.AddItem(ctx, 2, 1))
	require.NoError(t, f.store.RemoveItem(ctx, 1))

	assert.Equal(t, 1, f.store.Cart().ItemCount())
	assert.Equal(t, int64(2), f.store.Cart().Items[0].Product.ID)
	// The DELETE response is not trusted; a fresh GET follows.
	assert.Equal(t, 1, f.server.Calls("GET /carts/my-cart"))
}

func TestClearResetsToEmptySentinel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	require.NoError(t, f.store.AddItem(ctx, 3, 2))
	require.NoError(t, f.store.Clear(ctx))

	got := f.store.Cart()
	assert.Nil(t, got.ID)
	assert.Equal(t, []Item{}, got.Items)
	assert.Zero(t, got.TotalAmount)
	assert.Equal(t, StateEmpty, f.store.State())
}

func TestLoadFailureKeepsStaleCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	stale := f.store.Cart()

	f.server.FailStatus = http.StatusInternalServerError
	f.server.FailMessage = "boom"

	err := f.store.Load(ctx)
	require.Error(t, err)
	assert.Equal(t, StateError, f.store.State())
	assert.Equal(t, stale, f.store.Cart(), "stale cart is left untouched on failure")
	assert.NotEmpty(t, f.store.Err())
}

func TestErrorTaxonomyByStatusCode(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{"403 means authentication required", http.StatusForbidden, "Sign in to manage your cart"},
		{"404 means no active cart", http.StatusNotFound, "No active cart"},
		{"500 is generic", http.StatusInternalServerError, "Cart operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.token = "token"
			f.server.FailStatus = tt.status

			require.Error(t, f.store.Load(context.Background()))
			assert.Equal(t, tt.wantErr, f.store.Err())
		})
	}
}

func TestSnapshotRestoredOnReload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	persisted := f.store.Cart()

	// Simulated reload: a new store over the same storage, before any
	// network call.
	reloaded := NewStore(ctx, f.client, f.kv, func() string { return "" }, f.recorder)
	assert.Equal(t, persisted, reloaded.Cart())
	assert.Equal(t, StateLoaded, reloaded.State())
}

func TestTransferGuestCartReplacesWithMergedResult(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Build a guest cart, then sign in.
	f.token = "guest-session"
	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	f.token = "token"

	require.NoError(t, f.store.TransferGuestCart(ctx))
	assert.Equal(t, 1, f.server.Calls("POST /carts/transfer"))
	assert.Equal(t, StateLoaded, f.store.State())
	assert.NotZero(t, f.store.Cart().TotalAmount)
}

func TestTransferGuestCartNoopWhenEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	require.NoError(t, f.store.TransferGuestCart(ctx))
	assert.Equal(t, 0, f.server.Calls("POST /carts/transfer"))
}

func TestSubscribersSeeWholesaleReplacement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.token = "token"

	var snapshots []Snapshot
	f.store.Subscribe(func(s Snapshot) { snapshots = append(snapshots, s) })

	require.NoError(t, f.store.AddItem(ctx, 1, 1))
	require.Len(t, snapshots, 1)
	assert.Equal(t, StateLoaded, snapshots[0].State)
	assert.Equal(t, 1, snapshots[0].Cart.ItemCount())
}
