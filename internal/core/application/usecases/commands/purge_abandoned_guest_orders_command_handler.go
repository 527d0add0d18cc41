package commands

import (
	"context"
)

type PurgeAbandonedGuestOrdersCommandHandler struct {
	uowFactory GuestOrderUoWFactory
}

func NewPurgeAbandonedGuestOrdersCommandHandler(
	uowFactory GuestOrderUoWFactory,
) PurgeAbandonedGuestOrdersCommandHandler {
	return PurgeAbandonedGuestOrdersCommandHandler{uowFactory: uowFactory}
}

func (h PurgeAbandonedGuestOrdersCommandHandler) Handle(
	ctx context.Context,
	command PurgeAbandonedGuestOrdersCommand,
) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.GuestOrderRepository().DeleteAbandoned(ctx, command.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
