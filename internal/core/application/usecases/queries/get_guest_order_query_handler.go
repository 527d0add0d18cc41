package queries

import (
	"context"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SelectionView struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

type GuestOrderView struct {
	ID           kernel.UUID
	ServiceType  kernel.ServiceType
	Origin       *AddressView
	Destination  *AddressView
	Workers      int
	WalkDistance int
	HeavyItems   []SelectionView
	FactorIDs    []int64
	Cart         []SelectionView
	ScheduledAt  *time.Time
	DraftPrice   kernel.Money
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReconciledAt *time.Time
	OrderID      *int64
}

type guestAddressColumn struct {
	Kind        int     `json:"kind"`
	Line        string  `json:"line"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Floor       int     `json:"floor"`
	HasElevator bool    `json:"has_elevator"`
}

func (c *guestAddressColumn) view() *AddressView {
	if c == nil {
		return nil
	}
	return &AddressView{
		Kind:        order.AddressKind(c.Kind),
		Line:        c.Line,
		Lat:         c.Lat,
		Lng:         c.Lng,
		Floor:       c.Floor,
		HasElevator: c.HasElevator,
	}
}

type guestOrderRow struct {
	ID           uuid.UUID
	ServiceType  int
	Origin       *guestAddressColumn `gorm:"serializer:json"`
	Destination  *guestAddressColumn `gorm:"serializer:json"`
	Workers      int
	WalkDistance int
	HeavyItems   []SelectionView `gorm:"serializer:json"`
	FactorIDs    []int64         `gorm:"serializer:json"`
	Cart         []SelectionView `gorm:"serializer:json"`
	ScheduledAt  *time.Time
	DraftPrice   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReconciledAt *time.Time
	OrderID      *int64
}

type GetGuestOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetGuestOrderQueryHandler(db *gorm.DB) GetGuestOrderQueryHandler {
	return GetGuestOrderQueryHandler{db: db}
}

func (h GetGuestOrderQueryHandler) Handle(ctx context.Context, query GetGuestOrderQuery) (GuestOrderView, error) {
	if err := query.Validate(); err != nil {
		return GuestOrderView{}, err
	}

	var rows []guestOrderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, service_type, origin, destination, workers, walk_distance,
			heavy_items, factor_ids, cart, scheduled_at, draft_price,
			created_at, updated_at, reconciled_at, order_id
		FROM guest_orders
		WHERE id = ?
	`, query.ID().Bytes()).Scan(&rows).Error
	if err != nil {
		return GuestOrderView{}, err
	}
	if len(rows) == 0 {
		return GuestOrderView{}, errs.NewObjectNotFoundError("guest order", query.ID())
	}
	row := rows[0]

	return GuestOrderView{
		ID:           query.ID(),
		ServiceType:  kernel.ServiceType(row.ServiceType),
		Origin:       row.Origin.view(),
		Destination:  row.Destination.view(),
		Workers:      row.Workers,
		WalkDistance: row.WalkDistance,
		HeavyItems:   nonNil(row.HeavyItems),
		FactorIDs:    nonNil(row.FactorIDs),
		Cart:         nonNil(row.Cart),
		ScheduledAt:  row.ScheduledAt,
		DraftPrice:   kernel.Money(row.DraftPrice),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		ReconciledAt: row.ReconciledAt,
		OrderID:      row.OrderID,
	}, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
