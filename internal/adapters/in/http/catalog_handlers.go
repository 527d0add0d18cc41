package http

import (
	"net/http"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

type PricingFactorRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	ServiceType string `json:"service_type"`
	Price       int64  `json:"price"`
	Unit        string `json:"unit"`
	Active      *bool  `json:"active"`
}

type PackagingProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Active   *bool  `json:"active"`
}

// includeInactive is honored for admins only.
func includeInactive(c echo.Context) bool {
	actor, ok := actorFrom(c)
	return ok && actor.IsAdmin() && cast.ToBool(c.QueryParam("include_inactive"))
}

func activeOrDefault(active *bool) bool {
	return active == nil || *active
}

// ListPricingFactors handles GET /api/v1/catalog/factors?service_type=.
func (s *Server) ListPricingFactors(c echo.Context) error {
	serviceType := kernel.ServiceUnknown
	if raw := c.QueryParam("service_type"); raw != "" {
		st, err := kernel.ParseServiceType(raw)
		if err != nil {
			return err
		}
		serviceType = st
	}

	q, err := queries.NewListPricingFactorsQuery(serviceType, includeInactive(c))
	if err != nil {
		return err
	}
	views, err := s.h.ListPricingFactors.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	out := make([]PricingFactorResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newPricingFactorResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// CreatePricingFactor handles POST /api/v1/catalog/factors.
func (s *Server) CreatePricingFactor(c echo.Context) error {
	return s.upsertPricingFactor(c, nil, http.StatusCreated)
}

// UpdatePricingFactor handles PUT /api/v1/catalog/factors/:id.
func (s *Server) UpdatePricingFactor(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	return s.upsertPricingFactor(c, &id, http.StatusOK)
}

func (s *Server) upsertPricingFactor(c echo.Context, id *int64, status int) error {
	var req PricingFactorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := catalog.ParseFactorCategory(req.Category)
	if err != nil {
		return err
	}
	serviceType, err := kernel.ParseServiceType(req.ServiceType)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpsertPricingFactorCommand(
		mustActor(c), id, req.Name, category, serviceType, req.Price, req.Unit, activeOrDefault(req.Active),
	)
	if err != nil {
		return err
	}
	f, err := s.h.UpsertPricingFactor.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(status, pricingFactorFromDomain(f))
}

// ListPackagingProducts handles GET /api/v1/catalog/products?category=.
func (s *Server) ListPackagingProducts(c echo.Context) error {
	q := queries.NewListPackagingProductsQuery(c.QueryParam("category"), includeInactive(c))
	views, err := s.h.ListPackagingProducts.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	out := make([]PackagingProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newPackagingProductResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// CreatePackagingProduct handles POST /api/v1/catalog/products.
func (s *Server) CreatePackagingProduct(c echo.Context) error {
	return s.upsertPackagingProduct(c, nil, http.StatusCreated)
}

// UpdatePackagingProduct handles PUT /api/v1/catalog/products/:id.
func (s *Server) UpdatePackagingProduct(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	return s.upsertPackagingProduct(c, &id, http.StatusOK)
}

func (s *Server) upsertPackagingProduct(c echo.Context, id *int64, status int) error {
	var req PackagingProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpsertPackagingProductCommand(
		mustActor(c), id, req.Name, req.Category, req.Price, req.Stock, activeOrDefault(req.Active),
	)
	if err != nil {
		return err
	}
	p, err := s.h.UpsertPackagingProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(status, packagingProductFromDomain(p))
}
