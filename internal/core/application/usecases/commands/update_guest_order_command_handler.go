package commands

import (
	"context"
	"time"

	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/services"
)

// UpdateGuestOrderResult carries the draft and, once the draft is complete
// enough to be priced, its current quote.
type UpdateGuestOrderResult struct {
	Draft *guestorder.GuestOrder
	Quote *services.Quote
}

type UpdateGuestOrderCommandHandler struct {
	uowFactory GuestOrderUoWFactory
	engine     services.PricingEngine
}

func NewUpdateGuestOrderCommandHandler(
	uowFactory GuestOrderUoWFactory,
	engine services.PricingEngine,
) UpdateGuestOrderCommandHandler {
	return UpdateGuestOrderCommandHandler{uowFactory: uowFactory, engine: engine}
}

// Handle merges the patch into the draft. When the merged draft is ready it is
// priced; a pricing error rejects the whole step and nothing is stored.
func (h UpdateGuestOrderCommandHandler) Handle(
	ctx context.Context,
	command UpdateGuestOrderCommand,
) (UpdateGuestOrderResult, error) {
	if err := command.Validate(); err != nil {
		return UpdateGuestOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateGuestOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.GuestOrderRepository()
	draft, err := repo.GetForUpdate(ctx, command.GuestOrderID())
	if err != nil {
		return UpdateGuestOrderResult{}, err
	}

	if err = draft.Apply(command.Patch(), time.Now()); err != nil {
		return UpdateGuestOrderResult{}, err
	}

	result := UpdateGuestOrderResult{Draft: draft}
	if draft.Ready() == nil {
		q, _, quoteErr := quote(ctx, uow, h.engine, quoteInputFromGuestOrder(draft), false)
		if quoteErr != nil {
			return UpdateGuestOrderResult{}, quoteErr
		}
		if err = draft.SetDraftPrice(q.Total); err != nil {
			return UpdateGuestOrderResult{}, err
		}
		result.Quote = &q
	}

	if err = repo.Update(ctx, draft); err != nil {
		return UpdateGuestOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateGuestOrderResult{}, err
	}

	return result, nil
}
