package commands

import (
	"errors"
	"fmt"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to apply an Action to an order.
type TransitionOrderCommand struct {
	actor   kernel.Actor
	orderID int64
	action  order.Action
	guard   guard.ConstructorGuard
}

func NewTransitionOrderCommand(actor kernel.Actor, orderID int64, action order.Action) (TransitionOrderCommand, error) {
	var idErr error
	if orderID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not positive", orderID))
	}
	var actionErr error
	if action == order.ActionUnknown {
		actionErr = errs.NewValueIsRequiredError("action")
	}
	if err := errors.Join(actor.Validate(), idErr, actionErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		actor:   actor,
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c *TransitionOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c *TransitionOrderCommand) OrderID() int64       { return c.orderID }
func (c *TransitionOrderCommand) Action() order.Action { return c.action }
