package commands

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/otp"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrSendCodeCommandIsNotConstructed = errors.New(
	"SendCodeCommand must be created via NewSendCodeCommand constructor",
)

type SendCodeCommand struct {
	phone   kernel.Phone
	purpose otp.Purpose
	guard   guard.ConstructorGuard
}

// NewSendCodeCommand validates the phone format before anything is stored.
func NewSendCodeCommand(phone string, purpose otp.Purpose) (SendCodeCommand, error) {
	p, err := kernel.NewPhone(phone)
	if err != nil {
		return SendCodeCommand{}, err
	}
	if purpose != otp.PurposeLogin && purpose != otp.PurposeRegister {
		return SendCodeCommand{}, errs.NewValueIsInvalidError("purpose")
	}

	return SendCodeCommand{
		phone:   p,
		purpose: purpose,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *SendCodeCommand) Validate() error {
	return c.guard.Validate(ErrSendCodeCommandIsNotConstructed)
}

func (c *SendCodeCommand) Phone() kernel.Phone {
	return c.phone
}

func (c *SendCodeCommand) Purpose() otp.Purpose {
	return c.purpose
}
