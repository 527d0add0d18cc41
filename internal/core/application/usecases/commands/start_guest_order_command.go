package commands

import (
	"errors"

	"moving/internal/core/domain/model/guestorder"
	"moving/internal/pkg/guard"
)

var ErrStartGuestOrderCommandIsNotConstructed = errors.New(
	"StartGuestOrderCommand must be created via NewStartGuestOrderCommand constructor",
)

// StartGuestOrderCommand opens a quote draft for a visitor. The first step's
// fields may be sent along.
type StartGuestOrderCommand struct {
	patch guestorder.Patch
	guard guard.ConstructorGuard
}

func NewStartGuestOrderCommand(patch guestorder.Patch) StartGuestOrderCommand {
	return StartGuestOrderCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}
}

func (c *StartGuestOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartGuestOrderCommandIsNotConstructed)
}

func (c *StartGuestOrderCommand) Patch() guestorder.Patch {
	return c.patch
}
