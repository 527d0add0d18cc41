package commands

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/guard"
)

var ErrReconcileGuestOrderCommandIsNotConstructed = errors.New(
	"ReconcileGuestOrderCommand must be created via NewReconcileGuestOrderCommand constructor",
)

// ReconcileGuestOrderCommand converts a draft for a user that is already
// signed in. Unlike code verification, every failure is reported.
type ReconcileGuestOrderCommand struct {
	actor        kernel.Actor
	guestOrderID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewReconcileGuestOrderCommand(actor kernel.Actor, guestOrderID kernel.UUID) (ReconcileGuestOrderCommand, error) {
	if err := errors.Join(actor.Validate(), guestOrderID.Validate()); err != nil {
		return ReconcileGuestOrderCommand{}, err
	}

	return ReconcileGuestOrderCommand{
		actor:        actor,
		guestOrderID: guestOrderID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c *ReconcileGuestOrderCommand) Validate() error {
	return c.guard.Validate(ErrReconcileGuestOrderCommandIsNotConstructed)
}

func (c *ReconcileGuestOrderCommand) Actor() kernel.Actor       { return c.actor }
func (c *ReconcileGuestOrderCommand) GuestOrderID() kernel.UUID { return c.guestOrderID }
