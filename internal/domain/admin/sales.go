// internal/domain/admin/sales.go
package admin

import (
	"context"
	"fmt"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// SalesReport is the read-only revenue summary shown on the admin
// dashboard.
type SalesReport struct {
	TotalOrders   int64            `json:"total_orders"`
	TotalRevenue  int64            `json:"total_revenue"` // In cents
	AverageOrder  int64            `json:"average_order"`
	SalesByStatus map[string]int64 `json:"sales_by_status"`
	TopCourses    []CourseSales    `json:"top_courses"`
}

// CourseSales is one course's row in the sales report
type CourseSales struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Sold      int    `json:"sold"`
	Revenue   int64  `json:"revenue"`
}

// Sales fetches the admin sales report. It is read-only and keeps no
// mutable collection, so it does not share the collection core.
type Sales struct {
	client   *api.Client
	session  SessionRevoker
	notifier notify.Notifier

	report *SalesReport
	err    string
}

// NewSales creates the sales report store
func NewSales(client *api.Client, session SessionRevoker, notifier notify.Notifier) *Sales {
	return &Sales{
		client:   client,
		session:  session,
		notifier: notifier,
	}
}

// Report returns the cached sales report, or nil before the first fetch.
func (s *Sales) Report() *SalesReport {
	return s.report
}

// Err returns the last fetch error message, or "".
func (s *Sales) Err() string {
	return s.err
}

// Fetch loads the sales report, replacing the cached copy.
func (s *Sales) Fetch(ctx context.Context) (*SalesReport, error) {
	var report SalesReport
	if err := s.client.Do(ctx, "GET", "/analytics/sales", nil, nil, &report); err != nil {
		if api.IsUnauthorized(err) {
			_ = s.session.Clear(ctx)
			s.err = "Session expired"
			s.notifier.Error("Session expired, sign in again")
		} else {
			s.err = "Could not load sales report"
			s.notifier.Error(s.err)
		}
		return nil, fmt.Errorf("admin: fetch sales report: %w", err)
	}

	s.report = &report
	s.err = ""
	return &report, nil
}
