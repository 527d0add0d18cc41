package postgres

import (
	"moving/internal/adapters/out/postgres/catalogrepo"
	"moving/internal/core/ports"

	"gorm.io/gorm"
)

// CatalogReader serves catalog lookups on the plain connection, for reads
// that need no transaction such as quote previews.
type CatalogReader struct {
	db *gorm.DB
}

func NewCatalogReader(db *gorm.DB) *CatalogReader {
	return &CatalogReader{db: db}
}

func (r *CatalogReader) PricingFactorRepository() ports.PricingFactorRepository {
	return catalogrepo.NewGormPricingFactorRepository(r.db)
}

func (r *CatalogReader) PackagingProductRepository() ports.PackagingProductRepository {
	return catalogrepo.NewGormPackagingProductRepository(r.db)
}
