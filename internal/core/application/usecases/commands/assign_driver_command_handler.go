package commands

import (
	"context"

	"moving/internal/core/domain/model/order"
	"moving/internal/core/ports"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"
)

var ErrDriverNotAvailable = errs.NewRuleViolationError("DriverNotAvailable", "user is not an active driver")

type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	log        logger.ILogger
}

func NewAssignDriverCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	log logger.ILogger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With(logger.String("component", "assign_driver")),
	}
}

// Handle assigns an active driver and publishes driver-assigned with a short
// driver summary to the order's group.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driver, err := uow.UserRepository().Get(ctx, command.DriverID())
	if err != nil {
		return nil, err
	}
	if !driver.CanDeliver() {
		return nil, ErrDriverNotAvailable
	}

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.AssignDriver(command.Actor(), driver.ID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	vehicle := driver.Driver().Vehicle()
	notify(ctx, h.notifier, h.log, ports.Event{
		Name:    ports.EventDriverAssigned,
		OrderID: o.ID(),
		Payload: map[string]any{
			"order_id": o.ID(),
			"driver": map[string]any{
				"id":            driver.ID().String(),
				"name":          driver.FullName(),
				"phone":         driver.Phone().String(),
				"vehicle_model": vehicle.Model,
				"plate_number":  vehicle.PlateNumber,
			},
		},
	})

	return o, nil
}
