package order

import (
	"fmt"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

// Item is a packaging product line.
type Item struct {
	productID int64
	name      string
	quantity  int64
	unitPrice kernel.Money
	total     kernel.Money
}

func NewItem(productID int64, name string, quantity int64, unitPrice kernel.Money) (Item, error) {
	if productID <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("product_id", fmt.Errorf("%d is not positive", productID))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not positive", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unit_price", fmt.Errorf("%d is negative", unitPrice))
	}
	total, err := unitPrice.Mul(quantity)
	if err != nil {
		return Item{}, err
	}
	return Item{
		productID: productID,
		name:      strings.TrimSpace(name),
		quantity:  quantity,
		unitPrice: unitPrice,
		total:     total,
	}, nil
}

func (i Item) ProductID() int64         { return i.productID }
func (i Item) Name() string             { return i.name }
func (i Item) Quantity() int64          { return i.quantity }
func (i Item) UnitPrice() kernel.Money  { return i.unitPrice }
func (i Item) TotalPrice() kernel.Money { return i.total }

// Surcharge is a computed, non-product component of the price
// such as the base fare, distance, floors or a selected pricing factor.
type Surcharge struct {
	Code   string
	Name   string
	Amount kernel.Money
}
