package commands

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/guard"
)

var ErrEnsureAdminsCommandIsNotConstructed = errors.New(
	"EnsureAdminsCommand must be created via NewEnsureAdminsCommand constructor",
)

// EnsureAdminsCommand makes sure an admin account exists for every
// configured phone. Admins cannot self-register.
type EnsureAdminsCommand struct {
	phones []kernel.Phone
	guard  guard.ConstructorGuard
}

func NewEnsureAdminsCommand(phones []string) (EnsureAdminsCommand, error) {
	parsed := make([]kernel.Phone, 0, len(phones))
	var errList []error
	for _, raw := range phones {
		p, err := kernel.NewPhone(raw)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		parsed = append(parsed, p)
	}
	if err := errors.Join(errList...); err != nil {
		return EnsureAdminsCommand{}, err
	}

	return EnsureAdminsCommand{
		phones: parsed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *EnsureAdminsCommand) Validate() error {
	return c.guard.Validate(ErrEnsureAdminsCommandIsNotConstructed)
}

func (c *EnsureAdminsCommand) Phones() []kernel.Phone {
	return c.phones
}
