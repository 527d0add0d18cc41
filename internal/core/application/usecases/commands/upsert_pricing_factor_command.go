package commands

import (
	"errors"
	"fmt"
	"strings"

	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrUpsertPricingFactorCommandIsNotConstructed = errors.New(
	"UpsertPricingFactorCommand must be created via NewUpsertPricingFactorCommand constructor",
)

// UpsertPricingFactorCommand creates a factor when id is nil, otherwise
// replaces the editable fields of an existing one.
type UpsertPricingFactorCommand struct {
	id          *int64
	name        string
	category    catalog.FactorCategory
	serviceType kernel.ServiceType
	price       kernel.Money
	unit        string
	active      bool
	guard       guard.ConstructorGuard
}

func NewUpsertPricingFactorCommand(
	actor kernel.Actor,
	id *int64,
	name string,
	category catalog.FactorCategory,
	serviceType kernel.ServiceType,
	price int64,
	unit string,
	active bool,
) (UpsertPricingFactorCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpsertPricingFactorCommand{}, err
	}
	if !actor.IsAdmin() {
		return UpsertPricingFactorCommand{}, errs.NewAccessDeniedError("manage pricing factors")
	}

	var idErr error
	if id != nil && *id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not positive", *id))
	}
	money, priceErr := kernel.NewMoney(price)
	if err := errors.Join(idErr, priceErr, category.Validate(), serviceType.Validate()); err != nil {
		return UpsertPricingFactorCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return UpsertPricingFactorCommand{}, errs.NewValueIsRequiredError("name")
	}

	return UpsertPricingFactorCommand{
		id:          id,
		name:        name,
		category:    category,
		serviceType: serviceType,
		price:       money,
		unit:        unit,
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c *UpsertPricingFactorCommand) Validate() error {
	return c.guard.Validate(ErrUpsertPricingFactorCommandIsNotConstructed)
}

func (c *UpsertPricingFactorCommand) ID() *int64                       { return c.id }
func (c *UpsertPricingFactorCommand) Name() string                     { return c.name }
func (c *UpsertPricingFactorCommand) Category() catalog.FactorCategory { return c.category }
func (c *UpsertPricingFactorCommand) ServiceType() kernel.ServiceType  { return c.serviceType }
func (c *UpsertPricingFactorCommand) Price() kernel.Money              { return c.price }
func (c *UpsertPricingFactorCommand) Unit() string                     { return c.unit }
func (c *UpsertPricingFactorCommand) Active() bool                     { return c.active }
