package commands

import (
	"context"

	"moving/internal/core/domain/model/order"
	"moving/internal/core/ports"
	"moving/internal/pkg/logger"
)

// TransitionOrderCommandHandler drives the order state machine.
//
// The order row is locked for the duration of the transaction, so two
// concurrent requests on the same order are evaluated one after the other,
// the second against the first one's result. The status change is committed
// before order-status-changed is published.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(actor, 42, order.ActionComplete)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // not allowed from the current status
//	case errors.Is(err, errs.ErrAccessDenied):
//	    // actor has no authority over this order
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	log        logger.ILogger
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	log logger.ILogger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With(logger.String("component", "transition_order")),
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) (*order.Order, error) {
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

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Transition(command.Actor(), command.Action()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, h.log, orderStatusChanged(o.ID(), o.Status().String()))

	return o, nil
}
