package commands

import (
	"context"
	"time"

	"moving/internal/core/domain/model/ticket"
)

type CloseTicketCommandHandler struct {
	uowFactory TicketUoWFactory
	now        func() time.Time
}

func NewCloseTicketCommandHandler(uowFactory TicketUoWFactory) CloseTicketCommandHandler {
	return CloseTicketCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h CloseTicketCommandHandler) Handle(ctx context.Context, command CloseTicketCommand) (*ticket.Ticket, error) {
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

	repo := uow.TicketRepository()
	t, err := repo.GetForUpdate(ctx, command.TicketID())
	if err != nil {
		return nil, err
	}

	if err = t.Close(command.Actor(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
