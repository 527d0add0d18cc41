package catalogrepo

import (
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
)

type PricingFactorDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(255);not null"`
	Category    int    `gorm:"type:smallint;not null"`
	ServiceType int    `gorm:"type:smallint;not null;index"`
	Price       int64  `gorm:"not null"`
	Unit        string `gorm:"type:varchar(50);not null"`
	Active      bool   `gorm:"not null;index"`
}

func (PricingFactorDTO) TableName() string {
	return "pricing_factors"
}

type PackagingProductDTO struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"type:varchar(255);not null"`
	Category string `gorm:"type:varchar(100);not null"`
	Price    int64  `gorm:"not null"`
	Stock    int64  `gorm:"not null;check:stock >= 0"`
	Active   bool   `gorm:"not null;index"`
}

func (PackagingProductDTO) TableName() string {
	return "packaging_products"
}

func factorFromDomain(f *catalog.PricingFactor) PricingFactorDTO {
	return PricingFactorDTO{
		ID:          f.ID(),
		Name:        f.Name(),
		Category:    int(f.Category()),
		ServiceType: int(f.ServiceType()),
		Price:       f.Price().Int64(),
		Unit:        f.Unit(),
		Active:      f.IsActive(),
	}
}

func factorToDomain(dto PricingFactorDTO) *catalog.PricingFactor {
	return catalog.RestorePricingFactor(
		dto.ID,
		dto.Name,
		catalog.FactorCategory(dto.Category),
		kernel.ServiceType(dto.ServiceType),
		kernel.Money(dto.Price),
		dto.Unit,
		dto.Active,
	)
}

func productFromDomain(p *catalog.PackagingProduct) PackagingProductDTO {
	return PackagingProductDTO{
		ID:       p.ID(),
		Name:     p.Name(),
		Category: p.Category(),
		Price:    p.Price().Int64(),
		Stock:    p.Stock(),
		Active:   p.IsActive(),
	}
}

func productToDomain(dto PackagingProductDTO) *catalog.PackagingProduct {
	return catalog.RestorePackagingProduct(
		dto.ID,
		dto.Name,
		dto.Category,
		kernel.Money(dto.Price),
		dto.Stock,
		dto.Active,
	)
}
