package catalog

import (
	"errors"
	"fmt"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

var (
	ErrPackagingProductIsNotConstructed = errors.New("PackagingProduct must be created via NewPackagingProduct constructor")

	ErrOutOfStock = errs.NewRuleViolationError("OutOfStock", "not enough stock for product")
)

// PackagingProduct is a sellable packing supply such as boxes or bubble wrap.
type PackagingProduct struct {
	id       int64
	name     string
	category string
	price    kernel.Money
	stock    int64
	active   bool

	isConstructed bool
}

func NewPackagingProduct(name, category string, price kernel.Money, stock int64) (*PackagingProduct, error) {
	p := &PackagingProduct{active: true, isConstructed: true}
	if err := p.Update(name, category, price, stock); err != nil {
		return nil, err
	}
	return p, nil
}

func RestorePackagingProduct(
	id int64,
	name, category string,
	price kernel.Money,
	stock int64,
	active bool,
) *PackagingProduct {
	return &PackagingProduct{
		id:            id,
		name:          name,
		category:      category,
		price:         price,
		stock:         stock,
		active:        active,
		isConstructed: true,
	}
}

func (p *PackagingProduct) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackagingProductIsNotConstructed
	}
	return nil
}

func (p *PackagingProduct) ID() int64           { return p.id }
func (p *PackagingProduct) Name() string        { return p.name }
func (p *PackagingProduct) Category() string    { return p.category }
func (p *PackagingProduct) Price() kernel.Money { return p.price }
func (p *PackagingProduct) Stock() int64        { return p.stock }
func (p *PackagingProduct) IsActive() bool      { return p.active }

func (p *PackagingProduct) BindID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not positive", id))
	}
	p.id = id
	return nil
}

func (p *PackagingProduct) Update(name, category string, price kernel.Money, stock int64) error {
	name = strings.TrimSpace(name)

	var errList []error
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if price < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", price)))
	}
	if stock < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.name = name
	p.category = strings.TrimSpace(category)
	p.price = price
	p.stock = stock
	return nil
}

func (p *PackagingProduct) SetActive(active bool) {
	p.active = active
}

// CanSupply reports whether qty units can be sold right now.
func (p *PackagingProduct) CanSupply(qty int64) error {
	if qty > p.stock {
		return ErrOutOfStock.WithCause(fmt.Errorf("%s: requested %d, in stock %d", p.name, qty, p.stock))
	}
	return nil
}

// Reserve takes qty units out of stock.
func (p *PackagingProduct) Reserve(qty int64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not positive", qty))
	}
	if err := p.CanSupply(qty); err != nil {
		return err
	}
	p.stock -= qty
	return nil
}
