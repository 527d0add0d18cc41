package commands

import (
	"context"
	"fmt"
	"time"

	"moving/internal/core/domain/model/ticket"
	"moving/internal/pkg/errs"
)

type CreateTicketCommandHandler struct {
	uowFactory TicketUoWFactory
	now        func() time.Time
}

func NewCreateTicketCommandHandler(uowFactory TicketUoWFactory) CreateTicketCommandHandler {
	return CreateTicketCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle opens a ticket. A referenced order must be visible to the author.
func (h CreateTicketCommandHandler) Handle(ctx context.Context, command CreateTicketCommand) (*ticket.Ticket, error) {
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

	if orderID := command.OrderID(); orderID != nil {
		o, err := uow.OrderRepository().Get(ctx, *orderID)
		if err != nil {
			return nil, err
		}
		if !o.IsVisibleTo(command.Actor()) {
			return nil, errs.NewAccessDeniedError(fmt.Sprintf("open ticket for order %d", *orderID))
		}
	}

	t, err := ticket.NewTicket(
		command.Actor(), command.Subject(), command.Body(), command.Priority(), command.OrderID(), h.now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.TicketRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
