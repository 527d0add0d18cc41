package commands

import (
	"errors"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/ticket"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrCreateTicketCommandIsNotConstructed = errors.New(
	"CreateTicketCommand must be created via NewCreateTicketCommand constructor",
)

type CreateTicketCommand struct {
	actor    kernel.Actor
	subject  string
	body     string
	priority ticket.Priority
	orderID  *int64
	guard    guard.ConstructorGuard
}

func NewCreateTicketCommand(
	actor kernel.Actor,
	subject, body string,
	priority ticket.Priority,
	orderID *int64,
) (CreateTicketCommand, error) {
	var errList []error
	errList = append(errList, actor.Validate())
	if strings.TrimSpace(subject) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("subject"))
	}
	if strings.TrimSpace(body) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("body"))
	}
	if orderID != nil && *orderID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("order_id"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateTicketCommand{}, err
	}

	return CreateTicketCommand{
		actor:    actor,
		subject:  subject,
		body:     body,
		priority: priority,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *CreateTicketCommand) Validate() error {
	return c.guard.Validate(ErrCreateTicketCommandIsNotConstructed)
}

func (c *CreateTicketCommand) Actor() kernel.Actor       { return c.actor }
func (c *CreateTicketCommand) Subject() string           { return c.subject }
func (c *CreateTicketCommand) Body() string              { return c.body }
func (c *CreateTicketCommand) Priority() ticket.Priority { return c.priority }
func (c *CreateTicketCommand) OrderID() *int64           { return c.orderID }
