package queries

import (
	"context"
	"strings"

	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type PricingFactorView struct {
	ID          int64
	Name        string
	Category    catalog.FactorCategory
	ServiceType kernel.ServiceType
	Price       kernel.Money
	Unit        string
	Active      bool
}

type PackagingProductView struct {
	ID       int64
	Name     string
	Category string
	Price    kernel.Money
	Stock    int64
	Active   bool
}

type ListPricingFactorsQueryHandler struct {
	db *gorm.DB
}

func NewListPricingFactorsQueryHandler(db *gorm.DB) ListPricingFactorsQueryHandler {
	return ListPricingFactorsQueryHandler{db: db}
}

func (h ListPricingFactorsQueryHandler) Handle(
	ctx context.Context,
	query ListPricingFactorsQuery,
) ([]PricingFactorView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.ServiceType() != kernel.ServiceUnknown {
		where = append(where, "service_type = ?")
		args = append(args, int(query.ServiceType()))
	}
	if !query.IncludeInactive() {
		where = append(where, "active")
	}

	sql := `SELECT id, name, category, service_type, price, unit, active FROM pricing_factors`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY category, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factors := make([]PricingFactorView, 0)
	for rows.Next() {
		var (
			f                     PricingFactorView
			category, serviceType int
			price                 int64
		)
		if err = rows.Scan(&f.ID, &f.Name, &category, &serviceType, &price, &f.Unit, &f.Active); err != nil {
			return nil, err
		}
		f.Category = catalog.FactorCategory(category)
		f.ServiceType = kernel.ServiceType(serviceType)
		f.Price = kernel.Money(price)
		factors = append(factors, f)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return factors, nil
}

type ListPackagingProductsQueryHandler struct {
	db *gorm.DB
}

func NewListPackagingProductsQueryHandler(db *gorm.DB) ListPackagingProductsQueryHandler {
	return ListPackagingProductsQueryHandler{db: db}
}

func (h ListPackagingProductsQueryHandler) Handle(
	ctx context.Context,
	query ListPackagingProductsQuery,
) ([]PackagingProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.Category() != "" {
		where = append(where, "category = ?")
		args = append(args, query.Category())
	}
	if !query.IncludeInactive() {
		where = append(where, "active")
	}

	sql := `SELECT id, name, category, price, stock, active FROM packaging_products`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY category, name, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]PackagingProductView, 0)
	for rows.Next() {
		var p PackagingProductView
		var price int64
		if err = rows.Scan(&p.ID, &p.Name, &p.Category, &price, &p.Stock, &p.Active); err != nil {
			return nil, err
		}
		p.Price = kernel.Money(price)
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
