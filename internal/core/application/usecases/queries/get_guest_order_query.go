package queries

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/guard"
)

var ErrGetGuestOrderQueryIsNotConstructed = errors.New(
	"GetGuestOrderQuery must be created via NewGetGuestOrderQuery constructor",
)

// GetGuestOrderQuery reads a quote draft. Knowing the draft id is the only
// credential, as with every other guest operation.
type GetGuestOrderQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetGuestOrderQuery(id kernel.UUID) (GetGuestOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetGuestOrderQuery{}, err
	}
	return GetGuestOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetGuestOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetGuestOrderQueryIsNotConstructed)
}

func (q GetGuestOrderQuery) ID() kernel.UUID {
	return q.id
}
