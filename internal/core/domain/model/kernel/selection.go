package kernel

import (
	"fmt"

	"moving/internal/pkg/errs"
)

// MaxSelectionQuantity bounds the quantity of a single catalog line.
const MaxSelectionQuantity = 1000

// Selection references a catalog entry (pricing factor or product) by id with a quantity.
type Selection struct {
	ID       int64
	Quantity int64
}

func NewSelection(id, quantity int64) (Selection, error) {
	if id <= 0 {
		return Selection{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not positive", id))
	}
	if quantity <= 0 {
		return Selection{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not positive", quantity))
	}
	if quantity > MaxSelectionQuantity {
		return Selection{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxSelectionQuantity)
	}
	return Selection{ID: id, Quantity: quantity}, nil
}

func (s Selection) Validate() error {
	_, err := NewSelection(s.ID, s.Quantity)
	return err
}
