package catalog

import (
	"errors"
	"fmt"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

var ErrPricingFactorIsNotConstructed = errors.New("PricingFactor must be created via NewPricingFactor constructor")

// FactorCategory groups pricing factors by what they charge for.
type FactorCategory int

const (
	CategoryUnknown FactorCategory = iota
	CategoryFloor
	CategoryElevator
	CategoryDistance
	CategoryWorker
	CategoryHeavyItem
	CategoryExtra
)

var factorCategoryNames = map[FactorCategory]string{
	CategoryUnknown:   "unknown",
	CategoryFloor:     "floor",
	CategoryElevator:  "elevator",
	CategoryDistance:  "distance",
	CategoryWorker:    "worker",
	CategoryHeavyItem: "heavy_item",
	CategoryExtra:     "extra",
}

func ParseFactorCategory(s string) (FactorCategory, error) {
	for c, name := range factorCategoryNames {
		if c != CategoryUnknown && name == s {
			return c, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a factor category", s))
}

func (c FactorCategory) Validate() error {
	if c < CategoryFloor || c > CategoryExtra {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a factor category", c))
	}
	return nil
}

func (c FactorCategory) String() string {
	if name, ok := factorCategoryNames[c]; ok {
		return name
	}
	return factorCategoryNames[CategoryUnknown]
}

// PricingFactor is a named surcharge an admin can price per unit.
type PricingFactor struct {
	id          int64
	name        string
	category    FactorCategory
	serviceType kernel.ServiceType
	price       kernel.Money
	unit        string
	active      bool

	isConstructed bool
}

// NewPricingFactor creates an active factor. The id is bound by the store.
func NewPricingFactor(
	name string,
	category FactorCategory,
	serviceType kernel.ServiceType,
	price kernel.Money,
	unit string,
) (*PricingFactor, error) {
	f := &PricingFactor{active: true, isConstructed: true}
	if err := f.Update(name, category, serviceType, price, unit); err != nil {
		return nil, err
	}
	return f, nil
}

func RestorePricingFactor(
	id int64,
	name string,
	category FactorCategory,
	serviceType kernel.ServiceType,
	price kernel.Money,
	unit string,
	active bool,
) *PricingFactor {
	return &PricingFactor{
		id:            id,
		name:          name,
		category:      category,
		serviceType:   serviceType,
		price:         price,
		unit:          unit,
		active:        active,
		isConstructed: true,
	}
}

func (f *PricingFactor) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrPricingFactorIsNotConstructed
	}
	return nil
}

func (f *PricingFactor) ID() int64                       { return f.id }
func (f *PricingFactor) Name() string                    { return f.name }
func (f *PricingFactor) Category() FactorCategory        { return f.category }
func (f *PricingFactor) ServiceType() kernel.ServiceType { return f.serviceType }
func (f *PricingFactor) Price() kernel.Money             { return f.price }
func (f *PricingFactor) Unit() string                    { return f.unit }
func (f *PricingFactor) IsActive() bool                  { return f.active }

func (f *PricingFactor) BindID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("factor id", fmt.Errorf("%d is not positive", id))
	}
	f.id = id
	return nil
}

// Update replaces all editable fields after validating them together.
func (f *PricingFactor) Update(
	name string,
	category FactorCategory,
	serviceType kernel.ServiceType,
	price kernel.Money,
	unit string,
) error {
	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	var priceErr error
	if price < 0 {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", price))
	}

	if err := errors.Join(nameErr, category.Validate(), serviceType.Validate(), priceErr); err != nil {
		return err
	}

	f.name = name
	f.category = category
	f.serviceType = serviceType
	f.price = price
	f.unit = strings.TrimSpace(unit)
	return nil
}

func (f *PricingFactor) SetActive(active bool) {
	f.active = active
}

// AppliesTo reports whether the factor can be used for serviceType.
func (f *PricingFactor) AppliesTo(serviceType kernel.ServiceType) bool {
	return f.active && f.serviceType == serviceType
}
