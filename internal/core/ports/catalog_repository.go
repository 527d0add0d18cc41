package ports

import (
	"context"

	"moving/internal/core/domain/model/catalog"
)

type PricingFactorRepository interface {
	Add(ctx context.Context, aggregate *catalog.PricingFactor) error

	Update(ctx context.Context, aggregate *catalog.PricingFactor) error

	Get(ctx context.Context, id int64) (*catalog.PricingFactor, error)

	// FindByIDs returns the factors that exist; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]*catalog.PricingFactor, error)
}

type PackagingProductRepository interface {
	Add(ctx context.Context, aggregate *catalog.PackagingProduct) error

	Update(ctx context.Context, aggregate *catalog.PackagingProduct) error

	Get(ctx context.Context, id int64) (*catalog.PackagingProduct, error)

	// FindByIDs returns the products that exist; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]*catalog.PackagingProduct, error)

	// FindByIDsForUpdate is FindByIDs with row locks, used before reserving stock.
	FindByIDsForUpdate(ctx context.Context, ids []int64) ([]*catalog.PackagingProduct, error)
}
