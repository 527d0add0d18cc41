package commands

import (
	"errors"
	"fmt"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrUpsertPackagingProductCommandIsNotConstructed = errors.New(
	"UpsertPackagingProductCommand must be created via NewUpsertPackagingProductCommand constructor",
)

// UpsertPackagingProductCommand creates a product when id is nil. Stock is
// set absolutely, not adjusted.
type UpsertPackagingProductCommand struct {
	id       *int64
	name     string
	category string
	price    kernel.Money
	stock    int64
	active   bool
	guard    guard.ConstructorGuard
}

func NewUpsertPackagingProductCommand(
	actor kernel.Actor,
	id *int64,
	name, category string,
	price, stock int64,
	active bool,
) (UpsertPackagingProductCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpsertPackagingProductCommand{}, err
	}
	if !actor.IsAdmin() {
		return UpsertPackagingProductCommand{}, errs.NewAccessDeniedError("manage packaging products")
	}

	var errList []error
	if id != nil && *id <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not positive", *id)))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if stock < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock)))
	}
	money, priceErr := kernel.NewMoney(price)
	errList = append(errList, priceErr)
	if err := errors.Join(errList...); err != nil {
		return UpsertPackagingProductCommand{}, err
	}

	return UpsertPackagingProductCommand{
		id:       id,
		name:     name,
		category: category,
		price:    money,
		stock:    stock,
		active:   active,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *UpsertPackagingProductCommand) Validate() error {
	return c.guard.Validate(ErrUpsertPackagingProductCommandIsNotConstructed)
}

func (c *UpsertPackagingProductCommand) ID() *int64          { return c.id }
func (c *UpsertPackagingProductCommand) Name() string        { return c.name }
func (c *UpsertPackagingProductCommand) Category() string    { return c.category }
func (c *UpsertPackagingProductCommand) Price() kernel.Money { return c.price }
func (c *UpsertPackagingProductCommand) Stock() int64        { return c.stock }
func (c *UpsertPackagingProductCommand) Active() bool        { return c.active }
