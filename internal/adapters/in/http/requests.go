package http

import (
	"errors"
	"time"

	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/services"
	"moving/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/spf13/cast"
)

type AddressRequest struct {
	Line        string  `json:"line"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Floor       int     `json:"floor"`
	HasElevator bool    `json:"has_elevator"`
}

func (r *AddressRequest) toDomain(kind order.AddressKind) (*order.Address, error) {
	if r == nil {
		return nil, nil
	}
	loc, err := kernel.NewLocation(r.Lat, r.Lng)
	if err != nil {
		return nil, err
	}
	addr, err := order.NewAddress(kind, r.Line, loc, r.Floor, r.HasElevator)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

type SelectionRequest struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

func selections(in []SelectionRequest) ([]kernel.Selection, error) {
	out := make([]kernel.Selection, 0, len(in))
	var errList []error
	for _, s := range in {
		sel, err := kernel.NewSelection(s.ID, s.Quantity)
		errList = append(errList, err)
		out = append(out, sel)
	}
	return out, errors.Join(errList...)
}

// QuoteRequest describes what to price or order.
type QuoteRequest struct {
	ServiceType  string             `json:"service_type"`
	Origin       *AddressRequest    `json:"origin"`
	Destination  *AddressRequest    `json:"destination"`
	Workers      int                `json:"workers"`
	WalkDistance int                `json:"walk_distance"`
	HeavyItems   []SelectionRequest `json:"heavy_items"`
	FactorIDs    []int64            `json:"factor_ids"`
	Products     []SelectionRequest `json:"products"`
}

func (r QuoteRequest) toDomain() (services.QuoteInput, error) {
	serviceType, stErr := kernel.ParseServiceType(r.ServiceType)
	origin, oErr := r.Origin.toDomain(order.AddressOrigin)
	destination, dErr := r.Destination.toDomain(order.AddressDestination)
	if r.Destination == nil {
		dErr = errs.NewValueIsRequiredError("destination")
	}
	heavy, hErr := selections(r.HeavyItems)
	products, pErr := selections(r.Products)
	if err := errors.Join(stErr, oErr, dErr, hErr, pErr); err != nil {
		return services.QuoteInput{}, err
	}

	return services.QuoteInput{
		ServiceType:  serviceType,
		Origin:       origin,
		Destination:  *destination,
		Workers:      r.Workers,
		WalkDistance: r.WalkDistance,
		HeavyItems:   heavy,
		FactorIDs:    r.FactorIDs,
		Products:     products,
	}, nil
}

// GuestOrderRequest is a partial update of a guest draft. Absent fields are
// left unchanged.
type GuestOrderRequest struct {
	ServiceType  *string             `json:"service_type"`
	Origin       *AddressRequest     `json:"origin"`
	Destination  *AddressRequest     `json:"destination"`
	Workers      *int                `json:"workers"`
	WalkDistance *int                `json:"walk_distance"`
	HeavyItems   *[]SelectionRequest `json:"heavy_items"`
	FactorIDs    *[]int64            `json:"factor_ids"`
	Cart         *[]SelectionRequest `json:"cart"`
	ScheduledAt  *time.Time          `json:"scheduled_at"`
}

func (r GuestOrderRequest) toPatch() (guestorder.Patch, error) {
	var (
		patch   guestorder.Patch
		errList []error
		err     error
	)

	if r.ServiceType != nil {
		var st kernel.ServiceType
		st, err = kernel.ParseServiceType(*r.ServiceType)
		errList = append(errList, err)
		patch.ServiceType = &st
	}
	patch.Origin, err = r.Origin.toDomain(order.AddressOrigin)
	errList = append(errList, err)
	patch.Destination, err = r.Destination.toDomain(order.AddressDestination)
	errList = append(errList, err)

	if r.HeavyItems != nil {
		var heavy []kernel.Selection
		heavy, err = selections(*r.HeavyItems)
		errList = append(errList, err)
		patch.HeavyItems = &heavy
	}
	if r.Cart != nil {
		var cart []kernel.Selection
		cart, err = selections(*r.Cart)
		errList = append(errList, err)
		patch.Cart = &cart
	}

	patch.Workers = r.Workers
	patch.WalkDistance = r.WalkDistance
	patch.FactorIDs = r.FactorIDs
	patch.ScheduledAt = r.ScheduledAt

	return patch, errors.Join(errList...)
}

func bindPath(c echo.Context, name string, dst any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), dst, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func pathInt64(c echo.Context, name string) (int64, error) {
	var id int64
	if err := bindPath(c, name, &id); err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, errors.New("must be a positive integer"))
	}
	return id, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	if err := bindPath(c, name, &id); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(id.String())
}

// page reads limit and offset; zero values fall back to query defaults.
func page(c echo.Context) (int, int) {
	return cast.ToInt(c.QueryParam("limit")), cast.ToInt(c.QueryParam("offset"))
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
