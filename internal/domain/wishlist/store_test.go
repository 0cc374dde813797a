// internal/domain/wishlist/store_test.go
package wishlist_test

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
	"github.com/your-org/coursemarket-client/internal/domain/wishlist"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

func newTestStore(t *testing.T) (*wishlist.Store, *apitest.Server, *notify.Recorder) {
	t.Helper()

	server := apitest.New()
	t.Cleanup(server.Close)
	server.SeedProducts([]catalog.Product{
		{ID: 1, Name: "Go Basics", Price: 4900},
		{ID: 2, Name: "Advanced SQL", Price: 7900},
	})

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.API.BaseURL = server.BaseURL()

	recorder := notify.NewRecorder()
	client := api.NewClient(cfg, func() string { return "token" }, logger)
	return wishlist.NewStore(client, 7, recorder), server, recorder
}

func TestAddReplacesCollection(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, 1))
	require.Len(t, store.Items(), 1)
	assert.True(t, store.Contains(1))

	require.NoError(t, store.Add(ctx, 2))
	require.Len(t, store.Items(), 2)
	assert.True(t, store.Contains(2))
}

func TestAddSameCourseTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, 1))
	require.NoError(t, store.Add(ctx, 1))
	assert.Len(t, store.Items(), 1)
}

func TestRemoveReplacesCollection(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, 1))
	require.NoError(t, store.Add(ctx, 2))
	require.NoError(t, store.Remove(ctx, 1))

	assert.False(t, store.Contains(1))
	assert.True(t, store.Contains(2))
	assert.Len(t, store.Items(), 1)
}

func TestLoadFetchesUserScopedItems(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, 1))

	// A fresh store for the same user starts empty until loaded.
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{}
	cfg.API.BaseURL = server.BaseURL()
	client := api.NewClient(cfg, func() string { return "" }, logger)
	fresh := wishlist.NewStore(client, 7, notify.NewRecorder())

	assert.Empty(t, fresh.Items())
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.Contains(1))
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{"auth failure", http.StatusForbidden, "Sign in to use your wishlist"},
		{"missing wishlist", http.StatusNotFound, "Wishlist not found"},
		{"server fault", http.StatusInternalServerError, "Wishlist operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, server, recorder := newTestStore(t)
			server.FailStatus = tt.status

			require.Error(t, store.Load(context.Background()))
			assert.Equal(t, tt.wantErr, store.Err())
			assert.Contains(t, recorder.Errors(), tt.wantErr)
		})
	}
}

func TestSubscribersSeeFullCollection(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	var snapshots [][]wishlist.Item
	store.Subscribe(func(items []wishlist.Item) { snapshots = append(snapshots, items) })

	require.NoError(t, store.Add(ctx, 1))
	require.NoError(t, store.Add(ctx, 2))

	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[0], 1)
	assert.Len(t, snapshots[1], 2)
}
