// internal/domain/order/store_test.go
package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/apitest"
	"github.com/your-org/coursemarket-client/internal/config"
	"github.com/your-org/coursemarket-client/internal/domain/order"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

func newTestStore(t *testing.T) (*order.Store, *apitest.Server, *notify.Recorder) {
	t.Helper()

	server := apitest.New()
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.API.BaseURL = server.BaseURL()

	recorder := notify.NewRecorder()
	client := api.NewClient(cfg, func() string { return "token" }, logger)
	return order.NewStore(client, recorder), server, recorder
}

func validAddress() order.Address {
	return order.Address{
		FirstName:    "Test",
		LastName:     "User",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		PostalCode:   "12345",
		Country:      "US",
	}
}

func TestCheckoutRequiresAddress(t *testing.T) {
	ctx := context.Background()
	store, server, recorder := newTestStore(t)

	_, err := store.Checkout(ctx, &order.CheckoutRequest{})
	require.Error(t, err)
	assert.Equal(t, 0, server.Calls("POST /orders/create"))
	assert.Contains(t, recorder.Errors(), "Shipping address is required")
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	created, err := store.Checkout(ctx, &order.CheckoutRequest{ShippingAddress: validAddress()})
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.NotZero(t, created.ID)
}

func TestCompletePaymentMergesUpdatedRecord(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)
	server.SeedOrders([]order.Order{
		{ID: 100, Status: order.StatusPending, TotalAmount: 4900},
		{ID: 101, Status: order.StatusShipped, TotalAmount: 7900},
	})

	_, err := store.MyOrders(ctx)
	require.NoError(t, err)

	updated, err := store.CompletePayment(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, updated.Status)

	// The response record replaces the cached one in place; no refetch.
	require.Len(t, store.Orders(), 2)
	assert.Equal(t, order.StatusProcessing, store.Orders()[0].Status)
	assert.Equal(t, order.StatusShipped, store.Orders()[1].Status)
	assert.Equal(t, 1, server.Calls("GET /orders/my-orders"))
}

func TestUpdateStatusValidatesClientSide(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)

	_, err := store.UpdateStatus(ctx, 100, order.Status("REFUNDED"))
	require.Error(t, err)
	assert.Equal(t, 0, server.Calls("POST /orders/:id/update-status"))
}

func TestUpdateStatusMergesResponse(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)
	server.SeedOrders([]order.Order{
		{ID: 100, Status: order.StatusProcessing, CreatedAt: time.Now().UTC()},
	})

	_, err := store.AllOrders(ctx)
	require.NoError(t, err)

	updated, err := store.UpdateStatus(ctx, 100, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.Equal(t, order.StatusShipped, store.Orders()[0].Status)
}

func TestUpdateStatusUpsertsUncachedOrder(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)
	server.SeedOrders([]order.Order{
		{ID: 100, Status: order.StatusProcessing},
	})

	// Nothing fetched yet; the response record is still kept.
	_, err := store.UpdateStatus(ctx, 100, order.StatusShipped)
	require.NoError(t, err)
	require.Len(t, store.Orders(), 1)
	assert.Equal(t, int64(100), store.Orders()[0].ID)
}

func TestMyOrdersReplacesCachedList(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)
	server.SeedOrders([]order.Order{{ID: 100, Status: order.StatusPending}})

	orders, err := store.MyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	server.SeedOrders(nil)
	orders, err = store.MyOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, store.Orders())
}

func TestInvoiceIsOpaqueBinary(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	blob, err := store.Invoice(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test invoice"), blob)
}

func TestOrderErrorTaxonomy(t *testing.T) {
	ctx := context.Background()
	store, server, _ := newTestStore(t)
	server.FailStatus = 401

	_, err := store.MyOrders(ctx)
	require.Error(t, err)
	assert.Equal(t, "Sign in to view your orders", store.Err())
	assert.True(t, api.IsUnauthorized(err))
}
