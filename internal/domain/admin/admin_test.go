// internal/domain/admin/admin_test.go
package admin_test

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
	"github.com/your-org/coursemarket-client/internal/domain/admin"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/domain/order"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// revoker records sign-out requests issued by the stores.
type revoker struct {
	cleared int
}

func (r *revoker) Clear(ctx context.Context) error {
	r.cleared++
	return nil
}

type fixture struct {
	server   *apitest.Server
	client   *api.Client
	revoker  *revoker
	recorder *notify.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := apitest.New()
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.API.BaseURL = server.BaseURL()

	f := &fixture{
		server:   server,
		revoker:  &revoker{},
		recorder: notify.NewRecorder(),
	}
	f.client = api.NewClient(cfg, func() string { return "admin-token" }, logger)
	return f
}

func (f *fixture) products() *admin.Products {
	return admin.NewProducts(f.client, f.revoker, f.recorder)
}

func (f *fixture) categories() *admin.Categories {
	return admin.NewCategories(f.client, f.revoker, f.recorder)
}

func (f *fixture) discounts() *admin.Discounts {
	return admin.NewDiscounts(f.client, f.revoker, f.recorder)
}

func (f *fixture) comments() *admin.Comments {
	return admin.NewComments(f.client, f.revoker, f.recorder)
}

func (f *fixture) deliveries() *admin.Deliveries {
	return admin.NewDeliveries(f.client, f.revoker, f.recorder)
}

func productRequest(name string, categoryID int64) *admin.ProductRequest {
	return &admin.ProductRequest{
		Name:       name,
		Price:      4900,
		Quantity:   10,
		CategoryID: categoryID,
		Instructor: "T. Instructor",
	}
}

func TestAddMergesSingleRecordWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedProducts([]catalog.Product{{ID: 1, Name: "Existing", Price: 100, CategoryID: 9}})

	store := f.products()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, store.Items(), 1)

	created, err := store.Add(ctx, productRequest("New Course", 9))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// The response record is appended; the list endpoint was hit exactly
	// once, by the initial FetchAll.
	assert.Len(t, store.Items(), 2)
	assert.Equal(t, 1, f.server.Calls("GET /products/all"))
}

func TestUpdateReplacesCachedRecordInPlace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedProducts([]catalog.Product{
		{ID: 1, Name: "First", Price: 100, CategoryID: 9},
		{ID: 2, Name: "Second", Price: 200, CategoryID: 9},
	})

	store := f.products()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)

	updated, err := store.Update(ctx, 1, productRequest("Renamed", 9))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.Len(t, store.Items(), 2)
	assert.Equal(t, "Renamed", store.Items()[0].Name)
	assert.Equal(t, "Second", store.Items()[1].Name)
	assert.Equal(t, 1, f.server.Calls("GET /products/all"))
}

func TestDeleteDropsRecordFromCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedProducts([]catalog.Product{
		{ID: 1, Name: "First", CategoryID: 9},
		{ID: 2, Name: "Second", CategoryID: 9},
	})

	store := f.products()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, 1))
	require.Len(t, store.Items(), 1)
	assert.Equal(t, int64(2), store.Items()[0].ID)
}

func TestProductValidationSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	store := f.products()

	_, err := store.Add(ctx, &admin.ProductRequest{Price: 100, CategoryID: 9})
	require.Error(t, err)
	_, err = store.Add(ctx, &admin.ProductRequest{Name: "x", Price: -1, CategoryID: 9})
	require.Error(t, err)
	_, err = store.Add(ctx, &admin.ProductRequest{Name: "x", Price: 100})
	require.Error(t, err)

	assert.Equal(t, 0, f.server.Calls("POST /products/add"))
	assert.Len(t, f.recorder.Errors(), 3)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.FailStatus = http.StatusUnauthorized
	f.server.FailMessage = "token invalid"

	store := f.products()
	_, err := store.FetchAll(ctx)
	require.Error(t, err)

	assert.Equal(t, 1, f.revoker.cleared)
	assert.Equal(t, "Session expired", store.Err())
	assert.Contains(t, f.recorder.Errors(), "Session expired, sign in again")
}

func TestExpiredTokenFaultLeavesSessionIntact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	// The backend reports an expired token as a 500 with a message, not as
	// a 401, so no sign-out is forced.
	f.server.FailStatus = http.StatusInternalServerError
	f.server.FailMessage = "JWT expired at 2026-08-29T12:00:00Z"

	store := f.products()
	_, err := store.FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, api.IsJWTExpired(err))
	assert.Equal(t, "Session expired", store.Err())
	assert.Equal(t, 0, f.revoker.cleared)
}

func TestCategoryDeleteConstraintViolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedCategories([]catalog.Category{{ID: 9, Name: "Programming"}})
	f.server.SeedProducts([]catalog.Product{{ID: 1, Name: "Go Basics", CategoryID: 9}})

	store := f.categories()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)

	err = store.Delete(ctx, 9)
	require.Error(t, err)
	assert.True(t, api.IsConstraintViolation(err))
	assert.Contains(t, store.Err(), "record is still referenced")

	// The cached record survives the failed delete.
	_, found := store.Get(9)
	assert.True(t, found)
	assert.Equal(t, 0, f.revoker.cleared)
}

func TestDiscountRateValidatedClientSide(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	store := f.discounts()

	_, err := store.Create(ctx, &admin.DiscountRequest{ProductID: 1, Rate: 0})
	require.Error(t, err)
	_, err = store.Create(ctx, &admin.DiscountRequest{ProductID: 1, Rate: 101})
	require.Error(t, err)
	assert.Equal(t, 0, f.server.Calls("POST /discounts/create"))

	created, err := store.Create(ctx, &admin.DiscountRequest{ProductID: 1, Rate: 25})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, 25, created.Rate)
}

func TestDiscountDeactivateMergesRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedDiscounts([]catalog.Discount{{ID: 5, ProductID: 1, Rate: 25, Active: true}})

	store := f.discounts()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)

	updated, err := store.Deactivate(ctx, 5)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	cached, found := store.Get(5)
	require.True(t, found)
	assert.False(t, cached.Active)
}

func TestCommentModeration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedComments([]catalog.Comment{
		{ID: 1, ProductID: 5, Content: "Great", Approved: true},
		{ID: 2, ProductID: 5, Content: "Spam"},
		{ID: 3, ProductID: 5, Content: "Pending"},
	})

	store := f.comments()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, store.Pending(), 2)

	approved, err := store.Approve(ctx, 3)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Len(t, store.Pending(), 1)

	require.NoError(t, store.Delete(ctx, 2))
	assert.Empty(t, store.Pending())
	assert.Len(t, store.Items(), 2)
}

func TestDeliveryStatusUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedDeliveries([]order.Delivery{
		{ID: 7, OrderID: 100, Courier: "DHL", Status: order.StatusProcessing},
	})

	store := f.deliveries()
	_, err := store.FetchAll(ctx)
	require.NoError(t, err)

	_, err = store.UpdateStatus(ctx, 7, order.Status("LOST"))
	require.Error(t, err)
	assert.Equal(t, 0, f.server.Calls("POST /deliveries/:id/update-status"))

	updated, err := store.UpdateStatus(ctx, 7, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)

	cached, found := store.Get(7)
	require.True(t, found)
	assert.Equal(t, order.StatusShipped, cached.Status)
}

func TestSalesReportFetch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.SeedOrders([]order.Order{
		{ID: 1, Status: order.StatusDelivered, TotalAmount: 4900},
		{ID: 2, Status: order.StatusPending, TotalAmount: 7900},
	})

	store := admin.NewSales(f.client, f.revoker, f.recorder)
	report, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.TotalOrders)
	assert.Equal(t, int64(12800), report.TotalRevenue)
	assert.Equal(t, int64(1), report.SalesByStatus["DELIVERED"])
	assert.Same(t, report, store.Report())
}

func TestSalesReportUnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.server.FailStatus = http.StatusUnauthorized

	store := admin.NewSales(f.client, f.revoker, f.recorder)
	_, err := store.Fetch(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, f.revoker.cleared)
	assert.Equal(t, "Session expired", store.Err())
	assert.Nil(t, store.Report())
}
