package queries

import (
	"errors"

	"moving/internal/core/domain/services"
	"moving/internal/pkg/guard"
)

var ErrGetQuoteQueryIsNotConstructed = errors.New(
	"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
)

// GetQuoteQuery prices a request without storing anything.
type GetQuoteQuery struct {
	input services.QuoteInput
	guard guard.ConstructorGuard
}

func NewGetQuoteQuery(input services.QuoteInput) (GetQuoteQuery, error) {
	if err := errors.Join(input.ServiceType.Validate(), input.Destination.Validate()); err != nil {
		return GetQuoteQuery{}, err
	}
	return GetQuoteQuery{input: input, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

func (q GetQuoteQuery) Input() services.QuoteInput {
	return q.input
}
