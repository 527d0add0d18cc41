package commands

import (
	"context"

	"moving/internal/core/ports"
	"moving/internal/pkg/logger"
)

// notify delivers event after the state change has been committed.
// Failures are logged and dropped: the committed state is authoritative.
func notify(ctx context.Context, notifier ports.Notifier, log logger.ILogger, event ports.Event) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, event); err != nil {
		log.Warning("notification dropped",
			logger.String("event", event.Name),
			logger.Int64("order_id", event.OrderID),
			logger.Error(err),
		)
	}
}

func orderStatusChanged(orderID int64, status string) ports.Event {
	return ports.Event{
		Name:    ports.EventOrderStatusChanged,
		OrderID: orderID,
		Payload: map[string]any{
			"order_id": orderID,
			"status":   status,
		},
	}
}
