package commands

import (
	"context"
	"time"

	"moving/internal/core/domain/model/guestorder"
)

// StartGuestOrderCommandHandler creates the draft and returns it; the caller
// hands the draft id to the client.
type StartGuestOrderCommandHandler struct {
	uowFactory GuestOrderUoWFactory
}

func NewStartGuestOrderCommandHandler(uowFactory GuestOrderUoWFactory) StartGuestOrderCommandHandler {
	return StartGuestOrderCommandHandler{uowFactory: uowFactory}
}

func (h StartGuestOrderCommandHandler) Handle(
	ctx context.Context,
	command StartGuestOrderCommand,
) (*guestorder.GuestOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	draft := guestorder.NewGuestOrder(now)
	if err := draft.Apply(command.Patch(), now); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.GuestOrderRepository().Add(ctx, draft); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return draft, nil
}
