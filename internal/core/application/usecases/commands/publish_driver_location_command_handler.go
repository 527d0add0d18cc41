package commands

import (
	"context"
	"fmt"

	"moving/internal/core/ports"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"
)

type PublishDriverLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	log        logger.ILogger
}

func NewPublishDriverLocationCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	log logger.ILogger,
) PublishDriverLocationCommandHandler {
	return PublishDriverLocationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With(logger.String("component", "publish_driver_location")),
	}
}

// Handle checks that the actor drives the order, then publishes
// location-update to its group. Nothing is written.
func (h PublishDriverLocationCommandHandler) Handle(ctx context.Context, command PublishDriverLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !command.Actor().Is(o.DriverID()) {
		return errs.NewAccessDeniedError(fmt.Sprintf("publish location for order %d", o.ID()))
	}

	loc := command.Location()
	notify(ctx, h.notifier, h.log, ports.Event{
		Name:    ports.EventLocationUpdate,
		OrderID: o.ID(),
		Payload: map[string]any{
			"order_id": o.ID(),
			"lat":      loc.Lat(),
			"lng":      loc.Lng(),
		},
	})

	return nil
}
