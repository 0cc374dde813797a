// internal/domain/order/status.go
package order

// StatusDisplay is the presentation mapping for an order status: which step
// of the tracker to highlight and what to call it. It is a pure lookup, not
// a transition engine.
type StatusDisplay struct {
	Step     int // 0-based position on the tracker
	Label    string
	Terminal bool
}

// displaySteps maps each canonical status to its tracker representation.
var displaySteps = map[Status]StatusDisplay{
	StatusPending:    {Step: 0, Label: "Order placed"},
	StatusProcessing: {Step: 1, Label: "Processing"},
	StatusShipped:    {Step: 2, Label: "Shipped"},
	StatusDelivered:  {Step: 3, Label: "Delivered", Terminal: true},
	StatusCancelled:  {Step: 1, Label: "Cancelled", Terminal: true},
}

// Display maps a server-reported status to its tracker representation.
// An unrecognized or missing status maps to the processing step rather
// than failing; cancelled is terminal regardless of any other field.
func Display(status Status) StatusDisplay {
	if display, ok := displaySteps[status]; ok {
		return display
	}
	return displaySteps[StatusProcessing]
}
