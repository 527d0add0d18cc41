package commands

import (
	"errors"
	"fmt"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrCloseTicketCommandIsNotConstructed = errors.New(
	"CloseTicketCommand must be created via NewCloseTicketCommand constructor",
)

type CloseTicketCommand struct {
	actor    kernel.Actor
	ticketID int64
	guard    guard.ConstructorGuard
}

func NewCloseTicketCommand(actor kernel.Actor, ticketID int64) (CloseTicketCommand, error) {
	var idErr error
	if ticketID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("ticket_id", fmt.Errorf("%d is not positive", ticketID))
	}
	if err := errors.Join(actor.Validate(), idErr); err != nil {
		return CloseTicketCommand{}, err
	}

	return CloseTicketCommand{
		actor:    actor,
		ticketID: ticketID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *CloseTicketCommand) Validate() error {
	return c.guard.Validate(ErrCloseTicketCommandIsNotConstructed)
}

func (c *CloseTicketCommand) Actor() kernel.Actor { return c.actor }
func (c *CloseTicketCommand) TicketID() int64     { return c.ticketID }
