// internal/domain/admin/discounts.go
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Discounts manages product discounts from the admin console
type Discounts struct {
	*Collection[catalog.Discount]
}

// NewDiscounts creates the admin discount store
func NewDiscounts(client *api.Client, session SessionRevoker, notifier notify.Notifier) *Discounts {
	return &Discounts{
		Collection: NewCollection[catalog.Discount](client, session, notifier, "discounts", "/discounts/all"),
	}
}

// DiscountRequest represents a discount creation submission
type DiscountRequest struct {
	ProductID int64     `json:"product_id"`
	Rate      int       `json:"rate"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
}

// Create starts a discount. The rate is validated client-side before any
// request is sent.
func (d *Discounts) Create(ctx context.Context, req *DiscountRequest) (*catalog.Discount, error) {
	if req.Rate <= 0 || req.Rate > 100 {
		d.notifier.Error("Discount rate must be between 1 and 100")
		return nil, fmt.Errorf("admin: discount rate out of range: %d", req.Rate)
	}
	if req.ProductID == 0 {
		d.notifier.Error("Discount product is required")
		return nil, fmt.Errorf("admin: discount product is required")
	}

	created, err := d.mutate(ctx, "POST", "/discounts/create", nil, req, "Could not create discount")
	if err != nil {
		return nil, fmt.Errorf("admin: create discount: %w", err)
	}
	d.notifier.Success("Discount created")
	return created, nil
}

// Deactivate ends a discount and merges the server's record into the cache.
func (d *Discounts) Deactivate(ctx context.Context, id int64) (*catalog.Discount, error) {
	path := fmt.Sprintf("/discounts/%d/deactivate", id)
	updated, err := d.mutate(ctx, "POST", path, nil, nil, "Could not deactivate discount")
	if err != nil {
		return nil, fmt.Errorf("admin: deactivate discount %d: %w", id, err)
	}
	d.notifier.Success("Discount deactivated")
	return updated, nil
}
