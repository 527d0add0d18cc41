package kernel

import (
	"fmt"
	"math"

	"moving/internal/pkg/errs"
)

// Money is an amount in Toman. The platform never deals in fractions of a
// Toman, so amounts are whole numbers.
type Money int64

// NewMoney rejects negative amounts.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}
	return Money(amount), nil
}

// Add fails with ValueIsOutOfRangeError instead of wrapping around.
func (m Money) Add(other Money) (Money, error) {
	if (other > 0 && m > math.MaxInt64-other) || (other < 0 && m < math.MinInt64-other) {
		return 0, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d + %d", m, other), int64(math.MinInt64), int64(math.MaxInt64))
	}
	return m + other, nil
}

// Mul multiplies by a non-negative quantity; negative quantities yield zero.
// A product that does not fit in int64 fails with ValueIsOutOfRangeError.
func (m Money) Mul(qty int64) (Money, error) {
	if qty <= 0 || m == 0 {
		return 0, nil
	}
	product := m * Money(qty)
	if product/Money(qty) != m || (m < 0) != (product < 0) {
		return 0, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d x %d", m, qty), int64(math.MinInt64), int64(math.MaxInt64))
	}
	return product, nil
}

func (m Money) Int64() int64 {
	return int64(m)
}

func (m Money) String() string {
	return fmt.Sprintf("%d Toman", int64(m))
}

// Sum adds up a list of amounts, failing on overflow.
func Sum(amounts ...Money) (Money, error) {
	var total Money
	for _, a := range amounts {
		next, err := total.Add(a)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}
