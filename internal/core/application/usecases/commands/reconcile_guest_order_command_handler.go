package commands

import (
	"context"
	"time"

	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/services"
)

type ReconcileGuestOrderCommandHandler struct {
	uowFactory AuthUoWFactory
	engine     services.PricingEngine
}

func NewReconcileGuestOrderCommandHandler(
	uowFactory AuthUoWFactory,
	engine services.PricingEngine,
) ReconcileGuestOrderCommandHandler {
	return ReconcileGuestOrderCommandHandler{uowFactory: uowFactory, engine: engine}
}

// Handle returns guestorder.ErrAlreadyReconciled on replay and never creates
// a second order for the same draft.
func (h ReconcileGuestOrderCommandHandler) Handle(
	ctx context.Context,
	command ReconcileGuestOrderCommand,
) (*order.Order, error) {
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

	o, err := reconcileGuestOrder(ctx, uow, h.engine, command.Actor().UserID, command.GuestOrderID(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
