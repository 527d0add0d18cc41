package commands

import (
	"errors"

	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/guard"
)

var ErrUpdateGuestOrderCommandIsNotConstructed = errors.New(
	"UpdateGuestOrderCommand must be created via NewUpdateGuestOrderCommand constructor",
)

// UpdateGuestOrderCommand is one step of the quote flow. Submitting the same
// step twice yields the same draft.
type UpdateGuestOrderCommand struct {
	guestOrderID kernel.UUID
	patch        guestorder.Patch
	guard        guard.ConstructorGuard
}

func NewUpdateGuestOrderCommand(guestOrderID kernel.UUID, patch guestorder.Patch) (UpdateGuestOrderCommand, error) {
	if err := guestOrderID.Validate(); err != nil {
		return UpdateGuestOrderCommand{}, err
	}

	return UpdateGuestOrderCommand{
		guestOrderID: guestOrderID,
		patch:        patch,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c *UpdateGuestOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateGuestOrderCommandIsNotConstructed)
}

func (c *UpdateGuestOrderCommand) GuestOrderID() kernel.UUID {
	return c.guestOrderID
}

func (c *UpdateGuestOrderCommand) Patch() guestorder.Patch {
	return c.patch
}
