package services

import (
	"errors"
	"fmt"
	"math"

	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/pkg/errs"
)

var (
	ErrUnknownPricingFactor = errs.NewRuleViolationError("UnknownPricingFactor", "pricing factor does not exist or is not available")
	ErrUnknownProduct       = errs.NewRuleViolationError("UnknownProduct", "product does not exist or is not available")
	ErrOutOfStock           = catalog.ErrOutOfStock
)

// Component codes of the computed surcharges.
const (
	CodeBaseFare          = "base_fare"
	CodeDistance          = "distance"
	CodeOriginFloors      = "origin_floors"
	CodeDestinationFloors = "destination_floors"
	CodeWorkers           = "workers"
	CodeWalkDistance      = "walk_distance"
	CodeHeavyItem         = "heavy_item"
	CodeFactor            = "factor"
	CodeProduct           = "product"
)

// Limits on the labour part of a quote.
const (
	MaxWorkers      = 20
	MaxWalkDistance = 1000
)

// Tariff holds the configured unit rates.
type Tariff struct {
	BaseFare                kernel.Money
	PerKm                   kernel.Money
	PerFloorWithoutElevator kernel.Money
	PerFloorWithElevator    kernel.Money
	PerWorker               kernel.Money
	PerWalkMeter            kernel.Money
}

// QuoteInput describes what the customer asks for.
type QuoteInput struct {
	ServiceType  kernel.ServiceType
	Origin       *order.Address
	Destination  order.Address
	Workers      int
	WalkDistance int
	HeavyItems   []kernel.Selection
	FactorIDs    []int64
	Products     []kernel.Selection
}

// Component is one priced line of a quote. RefID and Quantity are set for
// heavy items, factors and products.
type Component struct {
	Code      string
	Name      string
	RefID     int64
	Quantity  int64
	UnitPrice kernel.Money
	Amount    kernel.Money
}

func (c Component) IsProduct() bool {
	return c.Code == CodeProduct
}

// Quote is the result of pricing. Total always equals the sum of component amounts.
type Quote struct {
	Components []Component
	Total      kernel.Money
}

// Items returns the product lines as order items.
func (q Quote) Items() ([]order.Item, error) {
	var items []order.Item
	for _, c := range q.Components {
		if !c.IsProduct() {
			continue
		}
		item, err := order.NewItem(c.RefID, c.Name, c.Quantity, c.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Surcharges returns every non-product line.
func (q Quote) Surcharges() []order.Surcharge {
	var surcharges []order.Surcharge
	for _, c := range q.Components {
		if c.IsProduct() {
			continue
		}
		surcharges = append(surcharges, order.Surcharge{Code: c.Code, Name: c.Name, Amount: c.Amount})
	}
	return surcharges
}

// Catalog is the reference data a quote is priced against.
type Catalog struct {
	Factors  map[int64]*catalog.PricingFactor
	Products map[int64]*catalog.PackagingProduct
}

// NewCatalog indexes factors and products by id.
func NewCatalog(factors []*catalog.PricingFactor, products []*catalog.PackagingProduct) Catalog {
	c := Catalog{
		Factors:  make(map[int64]*catalog.PricingFactor, len(factors)),
		Products: make(map[int64]*catalog.PackagingProduct, len(products)),
	}
	for _, f := range factors {
		c.Factors[f.ID()] = f
	}
	for _, p := range products {
		c.Products[p.ID()] = p
	}
	return c
}

// PricingEngine computes quotes from a Tariff.
//
// Components appear in a fixed order: base fare, distance, origin floors,
// destination floors, workers, walk distance, heavy items, selected factors,
// products. Moving-only components are skipped for packing-supplies orders.
// Zero-amount computed lines are omitted.
type PricingEngine struct {
	tariff Tariff
}

func NewPricingEngine(tariff Tariff) PricingEngine {
	return PricingEngine{tariff: tariff}
}

func (e PricingEngine) Tariff() Tariff {
	return e.tariff
}

// Quote prices input against cat. It fails with ErrUnknownPricingFactor,
// ErrUnknownProduct or ErrOutOfStock and never returns a partial quote.
func (e PricingEngine) Quote(input QuoteInput, cat Catalog) (Quote, error) {
	if err := e.validate(input); err != nil {
		return Quote{}, err
	}

	var components []Component
	add := func(c Component) {
		components = append(components, c)
	}

	if input.ServiceType.NeedsOrigin() {
		distance, err := e.distanceComponents(input)
		if err != nil {
			return Quote{}, err
		}
		for _, c := range distance {
			add(c)
		}
	}

	heavy, err := e.heavyItemComponents(input, cat)
	if err != nil {
		return Quote{}, err
	}
	factors, err := e.factorComponents(input, cat)
	if err != nil {
		return Quote{}, err
	}
	products, err := e.productComponents(input, cat)
	if err != nil {
		return Quote{}, err
	}
	for _, group := range [][]Component{heavy, factors, products} {
		for _, c := range group {
			add(c)
		}
	}

	amounts := make([]kernel.Money, 0, len(components))
	for _, c := range components {
		amounts = append(amounts, c.Amount)
	}
	total, err := kernel.Sum(amounts...)
	if err != nil {
		return Quote{}, err
	}

	return Quote{Components: components, Total: total}, nil
}

func (e PricingEngine) validate(input QuoteInput) error {
	var errList []error
	errList = append(errList, input.ServiceType.Validate(), input.Destination.Validate())
	if input.ServiceType.NeedsOrigin() {
		if input.Origin == nil {
			errList = append(errList, errs.NewValueIsRequiredError("origin"))
		} else {
			errList = append(errList, input.Origin.Validate())
		}
	}
	if input.Workers < 0 || input.Workers > MaxWorkers {
		errList = append(errList, errs.NewValueIsOutOfRangeError("workers", input.Workers, 0, MaxWorkers))
	}
	if input.WalkDistance < 0 || input.WalkDistance > MaxWalkDistance {
		errList = append(errList, errs.NewValueIsOutOfRangeError("walk_distance", input.WalkDistance, 0, MaxWalkDistance))
	}
	for _, s := range input.HeavyItems {
		errList = append(errList, s.Validate())
	}
	for _, s := range input.Products {
		errList = append(errList, s.Validate())
	}
	return errors.Join(errList...)
}

func (e PricingEngine) distanceComponents(input QuoteInput) ([]Component, error) {
	km, err := input.Origin.Location().DistanceTo(input.Destination.Location())
	if err != nil {
		return nil, err
	}

	lines := []struct {
		code, name string
		qty        int64
		rate       kernel.Money
	}{
		{CodeDistance, "Distance", int64(math.Ceil(km)), e.tariff.PerKm},
		{CodeOriginFloors, "Origin floors", floors(*input.Origin), e.floorRate(*input.Origin)},
		{CodeDestinationFloors, "Destination floors", floors(input.Destination), e.floorRate(input.Destination)},
		{CodeWorkers, "Workers", int64(input.Workers), e.tariff.PerWorker},
		{CodeWalkDistance, "Walk distance", int64(input.WalkDistance), e.tariff.PerWalkMeter},
	}

	var out []Component
	if e.tariff.BaseFare > 0 {
		out = append(out, Component{Code: CodeBaseFare, Name: "Base fare", Amount: e.tariff.BaseFare})
	}
	for _, l := range lines {
		amount, err := l.rate.Mul(l.qty)
		if err != nil {
			return nil, err
		}
		if amount > 0 {
			out = append(out, Component{Code: l.code, Name: l.name, Quantity: l.qty, UnitPrice: l.rate, Amount: amount})
		}
	}
	return out, nil
}

func floors(addr order.Address) int64 {
	n := int64(addr.Floor())
	if n < 0 {
		return -n
	}
	return n
}

func (e PricingEngine) floorRate(addr order.Address) kernel.Money {
	if addr.HasElevator() {
		return e.tariff.PerFloorWithElevator
	}
	return e.tariff.PerFloorWithoutElevator
}

func (e PricingEngine) heavyItemComponents(input QuoteInput, cat Catalog) ([]Component, error) {
	selections, err := mergeSelections(input.HeavyItems)
	if err != nil {
		return nil, err
	}

	var out []Component
	for _, sel := range selections {
		f, ok := cat.Factors[sel.ID]
		if !ok || !f.AppliesTo(input.ServiceType) || f.Category() != catalog.CategoryHeavyItem {
			return nil, ErrUnknownPricingFactor.WithCause(fmt.Errorf("heavy item %d", sel.ID))
		}
		amount, err := f.Price().Mul(sel.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, Component{
			Code: CodeHeavyItem, Name: f.Name(), RefID: f.ID(), Quantity: sel.Quantity,
			UnitPrice: f.Price(), Amount: amount,
		})
	}
	return out, nil
}

func (e PricingEngine) factorComponents(input QuoteInput, cat Catalog) ([]Component, error) {
	seen := make(map[int64]struct{}, len(input.FactorIDs))
	var out []Component
	for _, id := range input.FactorIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		f, ok := cat.Factors[id]
		if !ok || !f.AppliesTo(input.ServiceType) {
			return nil, ErrUnknownPricingFactor.WithCause(fmt.Errorf("factor %d", id))
		}
		out = append(out, Component{
			Code: CodeFactor, Name: f.Name(), RefID: f.ID(), Quantity: 1,
			UnitPrice: f.Price(), Amount: f.Price(),
		})
	}
	return out, nil
}

func (e PricingEngine) productComponents(input QuoteInput, cat Catalog) ([]Component, error) {
	selections, err := mergeSelections(input.Products)
	if err != nil {
		return nil, err
	}

	var out []Component
	for _, sel := range selections {
		p, ok := cat.Products[sel.ID]
		if !ok || !p.IsActive() {
			return nil, ErrUnknownProduct.WithCause(fmt.Errorf("product %d", sel.ID))
		}
		if err := p.CanSupply(sel.Quantity); err != nil {
			return nil, err
		}
		amount, err := p.Price().Mul(sel.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, Component{
			Code: CodeProduct, Name: p.Name(), RefID: p.ID(), Quantity: sel.Quantity,
			UnitPrice: p.Price(), Amount: amount,
		})
	}
	return out, nil
}

// mergeSelections sums quantities of repeated ids, keeping first-seen order.
// A merged line is held to the same quantity limit as a single one.
func mergeSelections(in []kernel.Selection) ([]kernel.Selection, error) {
	index := make(map[int64]int, len(in))
	var out []kernel.Selection
	for _, s := range in {
		if i, ok := index[s.ID]; ok {
			out[i].Quantity += s.Quantity
			if err := out[i].Validate(); err != nil {
				return nil, err
			}
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	return out, nil
}
