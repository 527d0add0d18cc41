package commands

import (
	"context"

	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/services"
)

// CreateOrderCommandHandler prices and stores a new order. A pricing error
// rejects the request before anything is written.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.PricingEngine
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, engine services.PricingEngine) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, engine: engine}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
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

	if _, err := uow.UserRepository().Get(ctx, command.CustomerID()); err != nil {
		return nil, err
	}

	o, err := placeOrder(
		ctx, uow, h.engine,
		command.CustomerID(), command.Input(), command.ScheduledAt(),
		command.Actor().IsAdmin(), nil,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
