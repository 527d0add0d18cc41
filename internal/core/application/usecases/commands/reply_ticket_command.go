package commands

import (
	"errors"
	"fmt"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrReplyTicketCommandIsNotConstructed = errors.New(
	"ReplyTicketCommand must be created via NewReplyTicketCommand constructor",
)

type ReplyTicketCommand struct {
	actor    kernel.Actor
	ticketID int64
	body     string
	guard    guard.ConstructorGuard
}

func NewReplyTicketCommand(actor kernel.Actor, ticketID int64, body string) (ReplyTicketCommand, error) {
	var errList []error
	errList = append(errList, actor.Validate())
	if ticketID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ticket_id", fmt.Errorf("%d is not positive", ticketID)))
	}
	if strings.TrimSpace(body) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("body"))
	}
	if err := errors.Join(errList...); err != nil {
		return ReplyTicketCommand{}, err
	}

	return ReplyTicketCommand{
		actor:    actor,
		ticketID: ticketID,
		body:     body,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *ReplyTicketCommand) Validate() error {
	return c.guard.Validate(ErrReplyTicketCommandIsNotConstructed)
}

func (c *ReplyTicketCommand) Actor() kernel.Actor { return c.actor }
func (c *ReplyTicketCommand) TicketID() int64     { return c.ticketID }
func (c *ReplyTicketCommand) Body() string        { return c.body }
