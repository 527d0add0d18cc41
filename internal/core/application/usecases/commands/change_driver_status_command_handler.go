package commands

import (
	"context"

	"moving/internal/core/domain/model/user"
	"moving/internal/core/ports"
	"moving/internal/pkg/logger"
)

type ChangeDriverStatusCommandHandler struct {
	uowFactory UserUoWFactory
	notifier   ports.Notifier
	log        logger.ILogger
}

func NewChangeDriverStatusCommandHandler(
	uowFactory UserUoWFactory,
	notifier ports.Notifier,
	log logger.ILogger,
) ChangeDriverStatusCommandHandler {
	return ChangeDriverStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With(logger.String("component", "change_driver_status")),
	}
}

// Handle updates the driver and tells them on their direct channel.
func (h ChangeDriverStatusCommandHandler) Handle(ctx context.Context, command ChangeDriverStatusCommand) (*user.User, error) {
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

	repo := uow.UserRepository()
	driver, err := repo.GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return nil, err
	}

	if err = driver.ChangeDriverStatus(command.Actor(), command.Status()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, driver); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	driverID := driver.ID()
	notify(ctx, h.notifier, h.log, ports.Event{
		Name:   ports.EventDriverStatusChanged,
		UserID: &driverID,
		Payload: map[string]any{
			"driver_id": driverID.String(),
			"status":    driver.Driver().Status().String(),
		},
	})

	return driver, nil
}
