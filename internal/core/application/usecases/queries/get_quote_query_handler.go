package queries

import (
	"context"

	"moving/internal/core/domain/services"
	"moving/internal/core/ports"
)

// CatalogReader gives read access to pricing factors and packaging products
// outside of a transaction.
type CatalogReader interface {
	PricingFactorRepository() ports.PricingFactorRepository
	PackagingProductRepository() ports.PackagingProductRepository
}

type GetQuoteQueryHandler struct {
	catalog CatalogReader
	engine  services.PricingEngine
}

func NewGetQuoteQueryHandler(catalog CatalogReader, engine services.PricingEngine) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{catalog: catalog, engine: engine}
}

// Handle loads the referenced factors and products and prices the input.
// Stock is checked but not reserved.
func (h GetQuoteQueryHandler) Handle(ctx context.Context, query GetQuoteQuery) (services.Quote, error) {
	if err := query.Validate(); err != nil {
		return services.Quote{}, err
	}
	input := query.Input()

	factorIDs := append([]int64(nil), input.FactorIDs...)
	for _, sel := range input.HeavyItems {
		factorIDs = append(factorIDs, sel.ID)
	}
	productIDs := make([]int64, 0, len(input.Products))
	for _, p := range input.Products {
		productIDs = append(productIDs, p.ID)
	}

	cat := services.NewCatalog(nil, nil)
	if len(factorIDs) > 0 {
		factors, err := h.catalog.PricingFactorRepository().FindByIDs(ctx, factorIDs)
		if err != nil {
			return services.Quote{}, err
		}
		for _, f := range factors {
			cat.Factors[f.ID()] = f
		}
	}
	if len(productIDs) > 0 {
		products, err := h.catalog.PackagingProductRepository().FindByIDs(ctx, productIDs)
		if err != nil {
			return services.Quote{}, err
		}
		for _, p := range products {
			cat.Products[p.ID()] = p
		}
	}

	return h.engine.Quote(input, cat)
}
