// internal/domain/admin/deliveries.go
package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/domain/order"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Deliveries tracks shipments from the admin console
type Deliveries struct {
	*Collection[order.Delivery]
}

// NewDeliveries creates the admin delivery store
func NewDeliveries(client *api.Client, session SessionRevoker, notifier notify.Notifier) *Deliveries {
	return &Deliveries{
		Collection: NewCollection[order.Delivery](client, session, notifier, "deliveries", "/deliveries/all"),
	}
}

// UpdateStatus moves a delivery to the given status. The status is
// validated client-side before any request is sent.
func (d *Deliveries) UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Delivery, error) {
	if !status.Valid() {
		d.notifier.Error("Unknown delivery status")
		return nil, fmt.Errorf("admin: invalid delivery status %q", status)
	}

	path := fmt.Sprintf("/deliveries/%d/update-status", id)
	query := url.Values{}
	query.Set("status", string(status))

	updated, err := d.mutate(ctx, "POST", path, query, nil, "Could not update delivery")
	if err != nil {
		return nil, fmt.Errorf("admin: update delivery %d: %w", id, err)
	}
	d.notifier.Success("Delivery updated")
	return updated, nil
}
