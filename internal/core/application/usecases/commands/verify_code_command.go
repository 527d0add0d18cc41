package commands

import (
	"errors"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrVerifyCodeCommandIsNotConstructed = errors.New(
	"VerifyCodeCommand must be created via NewVerifyCodeCommand constructor",
)

// Registration holds the profile sent with a registration code.
type Registration struct {
	FirstName string
	LastName  string
	Role      kernel.Role
	Vehicle   *user.Vehicle
}

func (r Registration) validate() error {
	if r.Role != kernel.RoleCustomer && r.Role != kernel.RoleDriver {
		return errs.NewAccessDeniedError("register as " + r.Role.String())
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return errs.NewValueIsRequiredError("first_name")
	}
	return nil
}

// VerifyCodeCommand completes login or registration. With a guest order id
// the draft is converted into an order of the authenticated user.
type VerifyCodeCommand struct {
	requestID    kernel.UUID
	phone        kernel.Phone
	code         string
	registration *Registration
	guestOrderID *kernel.UUID
	guard        guard.ConstructorGuard
}

func NewVerifyCodeCommand(
	requestID string,
	phone string,
	code string,
	registration *Registration,
	guestOrderID *kernel.UUID,
) (VerifyCodeCommand, error) {
	var errList []error

	id, err := kernel.UUIDFromString(requestID)
	errList = append(errList, err)

	p, err := kernel.NewPhone(phone)
	errList = append(errList, err)

	code = strings.TrimSpace(code)
	if code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	if registration != nil {
		errList = append(errList, registration.validate())
	}
	if guestOrderID != nil {
		errList = append(errList, guestOrderID.Validate())
	}

	if err = errors.Join(errList...); err != nil {
		return VerifyCodeCommand{}, err
	}

	return VerifyCodeCommand{
		requestID:    id,
		phone:        p,
		code:         code,
		registration: registration,
		guestOrderID: guestOrderID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c *VerifyCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCodeCommandIsNotConstructed)
}

func (c *VerifyCodeCommand) RequestID() kernel.UUID      { return c.requestID }
func (c *VerifyCodeCommand) Phone() kernel.Phone         { return c.phone }
func (c *VerifyCodeCommand) Code() string                { return c.code }
func (c *VerifyCodeCommand) Registration() *Registration { return c.registration }
func (c *VerifyCodeCommand) GuestOrderID() *kernel.UUID  { return c.guestOrderID }
