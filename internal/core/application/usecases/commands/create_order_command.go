package commands

import (
	"errors"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/services"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places an order directly, without a guest draft.
// Customers order for themselves and start in PendingPayment. Admins order
// on behalf of a customer and skip payment.
type CreateOrderCommand struct {
	actor       kernel.Actor
	customerID  kernel.UUID
	input       services.QuoteInput
	scheduledAt *time.Time
	guard       guard.ConstructorGuard
}

// NewCreateOrderCommand checks who may order for whom. customerID is only
// read for admins; nil means the admin orders for themselves.
func NewCreateOrderCommand(
	actor kernel.Actor,
	customerID *kernel.UUID,
	input services.QuoteInput,
	scheduledAt *time.Time,
) (CreateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	owner := actor.UserID
	switch {
	case actor.IsAdmin() && customerID != nil:
		if err := customerID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
		owner = *customerID
	case actor.Role == kernel.RoleDriver:
		return CreateOrderCommand{}, errs.NewAccessDeniedError("create order as driver")
	}

	return CreateOrderCommand{
		actor:       actor,
		customerID:  owner,
		input:       input,
		scheduledAt: scheduledAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c *CreateOrderCommand) Actor() kernel.Actor        { return c.actor }
func (c *CreateOrderCommand) CustomerID() kernel.UUID    { return c.customerID }
func (c *CreateOrderCommand) Input() services.QuoteInput { return c.input }
func (c *CreateOrderCommand) ScheduledAt() *time.Time    { return c.scheduledAt }
