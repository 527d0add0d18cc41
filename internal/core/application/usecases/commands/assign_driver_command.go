package commands

import (
	"errors"
	"fmt"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand is the manual dispatch of a driver by an admin.
type AssignDriverCommand struct {
	actor    kernel.Actor
	orderID  int64
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewAssignDriverCommand(actor kernel.Actor, orderID int64, driverID kernel.UUID) (AssignDriverCommand, error) {
	var idErr error
	if orderID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not positive", orderID))
	}
	if err := errors.Join(actor.Validate(), idErr, driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		actor:    actor,
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c *AssignDriverCommand) Actor() kernel.Actor   { return c.actor }
func (c *AssignDriverCommand) OrderID() int64        { return c.orderID }
func (c *AssignDriverCommand) DriverID() kernel.UUID { return c.driverID }
