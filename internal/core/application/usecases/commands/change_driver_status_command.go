package commands

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
	"moving/internal/pkg/guard"
)

var ErrChangeDriverStatusCommandIsNotConstructed = errors.New(
	"ChangeDriverStatusCommand must be created via NewChangeDriverStatusCommand constructor",
)

type ChangeDriverStatusCommand struct {
	actor    kernel.Actor
	driverID kernel.UUID
	status   user.DriverStatus
	guard    guard.ConstructorGuard
}

func NewChangeDriverStatusCommand(
	actor kernel.Actor,
	driverID kernel.UUID,
	status user.DriverStatus,
) (ChangeDriverStatusCommand, error) {
	if err := errors.Join(actor.Validate(), driverID.Validate(), status.Validate()); err != nil {
		return ChangeDriverStatusCommand{}, err
	}

	return ChangeDriverStatusCommand{
		actor:    actor,
		driverID: driverID,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *ChangeDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverStatusCommandIsNotConstructed)
}

func (c *ChangeDriverStatusCommand) Actor() kernel.Actor       { return c.actor }
func (c *ChangeDriverStatusCommand) DriverID() kernel.UUID     { return c.driverID }
func (c *ChangeDriverStatusCommand) Status() user.DriverStatus { return c.status }
