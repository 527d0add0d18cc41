package commands

import (
	"errors"
	"fmt"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrPublishDriverLocationCommandIsNotConstructed = errors.New(
	"PublishDriverLocationCommand must be created via NewPublishDriverLocationCommand constructor",
)

// PublishDriverLocationCommand relays a driver's position to an order's group.
// Positions are not stored.
type PublishDriverLocationCommand struct {
	actor    kernel.Actor
	orderID  int64
	location kernel.Location
	guard    guard.ConstructorGuard
}

func NewPublishDriverLocationCommand(
	actor kernel.Actor,
	orderID int64,
	lat, lng float64,
) (PublishDriverLocationCommand, error) {
	var idErr error
	if orderID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not positive", orderID))
	}
	loc, locErr := kernel.NewLocation(lat, lng)
	if err := errors.Join(actor.Validate(), idErr, locErr); err != nil {
		return PublishDriverLocationCommand{}, err
	}
	if actor.Role != kernel.RoleDriver {
		return PublishDriverLocationCommand{}, errs.NewAccessDeniedError("publish location as " + actor.Role.String())
	}

	return PublishDriverLocationCommand{
		actor:    actor,
		orderID:  orderID,
		location: loc,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *PublishDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrPublishDriverLocationCommandIsNotConstructed)
}

func (c *PublishDriverLocationCommand) Actor() kernel.Actor       { return c.actor }
func (c *PublishDriverLocationCommand) OrderID() int64            { return c.orderID }
func (c *PublishDriverLocationCommand) Location() kernel.Location { return c.location }
