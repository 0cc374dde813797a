// cmd/console/root.go
package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/config"
	"github.com/your-org/coursemarket-client/internal/domain/admin"
	"github.com/your-org/coursemarket-client/internal/domain/cart"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/domain/order"
	"github.com/your-org/coursemarket-client/internal/domain/wishlist"
	"github.com/your-org/coursemarket-client/internal/pkg/logging"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
	"github.com/your-org/coursemarket-client/internal/session"
	"github.com/your-org/coursemarket-client/internal/storage"
)

// app wires the configured stores together for the command handlers.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	notifier notify.Notifier

	client  *api.Client
	session *session.Store
	auth    *session.Service
	catalog *catalog.Store
	cart    *cart.Store
	orders  *order.Store
}

// newApp builds the full client from configuration.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg)
	notifier := notify.NewLog(logger)

	kv, err := newStorageBackend(cfg)
	if err != nil {
		return nil, err
	}

	sessionStore, err := session.NewStore(ctx, kv)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg, sessionStore.Token, logger)
	cartStore := cart.NewStore(ctx, client, kv, sessionStore.Token, notifier)

	// A pre-login cart is merged into the user's server-side cart as soon
	// as a token appears.
	sessionStore.Subscribe(func(snapshot session.Snapshot) {
		if snapshot.Authenticated() && cartStore.Cart().ItemCount() > 0 {
			if err := cartStore.TransferGuestCart(ctx); err != nil {
				logger.WithError(err).Warn("Guest cart transfer failed")
			}
		}
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		client:   client,
		session:  sessionStore,
		auth:     session.NewService(client, sessionStore, notifier),
		catalog:  catalog.NewStore(client, notifier),
		cart:     cartStore,
		orders:   order.NewStore(client, notifier),
	}, nil
}

func newStorageBackend(cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		return storage.NewRedisStore(cfg)
	default:
		return storage.NewFileStore(cfg.Storage.Dir)
	}
}

// wishlistStore builds the wishlist store for the signed-in user.
func (a *app) wishlistStore() (*wishlist.Store, error) {
	user := a.session.User()
	if user == nil {
		return nil, fmt.Errorf("sign in to use your wishlist")
	}
	return wishlist.NewStore(a.client, user.ID, a.notifier), nil
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "coursemarket",
		Short:         "Storefront and admin console for the course marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newCoursesCommand(),
		newCartCommand(),
		newWishlistCommand(),
		newOrdersCommand(),
		newAdminCommand(),
	)
	return root
}

// adminStores bundles the back-office stores.
type adminStores struct {
	products   *admin.Products
	categories *admin.Categories
	discounts  *admin.Discounts
	comments   *admin.Comments
	deliveries *admin.Deliveries
	sales      *admin.Sales
}

func (a *app) admin() *adminStores {
	return &adminStores{
		products:   admin.NewProducts(a.client, a.session, a.notifier),
		categories: admin.NewCategories(a.client, a.session, a.notifier),
		discounts:  admin.NewDiscounts(a.client, a.session, a.notifier),
		comments:   admin.NewComments(a.client, a.session, a.notifier),
		deliveries: admin.NewDeliveries(a.client, a.session, a.notifier),
		sales:      admin.NewSales(a.client, a.session, a.notifier),
	}
}
