package queries

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/guard"
)

var (
	ErrListPricingFactorsQueryIsNotConstructed = errors.New(
		"ListPricingFactorsQuery must be created via NewListPricingFactorsQuery constructor",
	)
	ErrListPackagingProductsQueryIsNotConstructed = errors.New(
		"ListPackagingProductsQuery must be created via NewListPackagingProductsQuery constructor",
	)
)

// ListPricingFactorsQuery lists factors for one service type, or for all of
// them when serviceType is ServiceUnknown. Inactive factors are included
// only on request, which the API grants to admins.
type ListPricingFactorsQuery struct {
	serviceType     kernel.ServiceType
	includeInactive bool
	guard           guard.ConstructorGuard
}

func NewListPricingFactorsQuery(serviceType kernel.ServiceType, includeInactive bool) (ListPricingFactorsQuery, error) {
	if serviceType != kernel.ServiceUnknown {
		if err := serviceType.Validate(); err != nil {
			return ListPricingFactorsQuery{}, err
		}
	}
	return ListPricingFactorsQuery{
		serviceType:     serviceType,
		includeInactive: includeInactive,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q ListPricingFactorsQuery) Validate() error {
	return q.guard.Validate(ErrListPricingFactorsQueryIsNotConstructed)
}

func (q ListPricingFactorsQuery) ServiceType() kernel.ServiceType { return q.serviceType }
func (q ListPricingFactorsQuery) IncludeInactive() bool           { return q.includeInactive }

// ListPackagingProductsQuery lists products, optionally of one category.
type ListPackagingProductsQuery struct {
	category        string
	includeInactive bool
	guard           guard.ConstructorGuard
}

func NewListPackagingProductsQuery(category string, includeInactive bool) ListPackagingProductsQuery {
	return ListPackagingProductsQuery{
		category:        category,
		includeInactive: includeInactive,
		guard:           guard.NewConstructorGuard(),
	}
}

func (q ListPackagingProductsQuery) Validate() error {
	return q.guard.Validate(ErrListPackagingProductsQueryIsNotConstructed)
}

func (q ListPackagingProductsQuery) Category() string      { return q.category }
func (q ListPackagingProductsQuery) IncludeInactive() bool { return q.includeInactive }
