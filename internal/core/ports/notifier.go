package ports

import (
	"context"

	"moving/internal/core/domain/model/kernel"
)

// Event names pushed to clients.
const (
	EventLocationUpdate      = "location-update"
	EventOrderStatusChanged  = "order-status-changed"
	EventDriverAssigned      = "driver-assigned"
	EventNewTicketReply      = "new-ticket-reply"
	EventDriverStatusChanged = "driver-status-changed"
)

// Event is a notification. Order-scoped events set OrderID and are delivered
// to the order's group; user-scoped events set UserID and go to that user's
// direct channel.
type Event struct {
	Name    string
	OrderID int64
	UserID  *kernel.UUID
	Payload map[string]any
}

// IsOrderScoped reports whether the event belongs to an order group.
func (e Event) IsOrderScoped() bool {
	return e.OrderID > 0
}

// Notifier delivers events best effort. Callers log and drop its errors.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
