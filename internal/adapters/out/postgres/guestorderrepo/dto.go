package guestorderrepo

import (
	"time"

	"moving/internal/adapters/out/postgres/orderrepo"
	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// GuestOrderDTO keeps the draft's loosely structured parts in jsonb columns,
// since drafts are filled step by step and never queried by their content.
type GuestOrderDTO struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	ServiceType  int                    `gorm:"type:smallint;not null"`
	Origin       *orderrepo.AddressDTO  `gorm:"serializer:json;type:jsonb"`
	Destination  *orderrepo.AddressDTO  `gorm:"serializer:json;type:jsonb"`
	Workers      int                    `gorm:"not null"`
	WalkDistance int                    `gorm:"not null"`
	HeavyItems   []SelectionDTO         `gorm:"serializer:json;type:jsonb"`
	FactorIDs    []int64                `gorm:"serializer:json;type:jsonb"`
	Cart         []SelectionDTO         `gorm:"serializer:json;type:jsonb"`
	ScheduledAt  *time.Time
	DraftPrice   int64     `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null;index"`
	ReconciledAt *time.Time
	UserID       *uuid.UUID `gorm:"type:uuid"`
	OrderID      *int64
}

func (GuestOrderDTO) TableName() string {
	return "guest_orders"
}

type SelectionDTO struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

func selectionsFromDomain(in []kernel.Selection) []SelectionDTO {
	out := make([]SelectionDTO, 0, len(in))
	for _, s := range in {
		out = append(out, SelectionDTO{ID: s.ID, Quantity: s.Quantity})
	}
	return out
}

func selectionsToDomain(in []SelectionDTO) ([]kernel.Selection, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]kernel.Selection, 0, len(in))
	for _, s := range in {
		sel, err := kernel.NewSelection(s.ID, s.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func addressFromDomain(a *order.Address) *orderrepo.AddressDTO {
	if a == nil {
		return nil
	}
	dto := orderrepo.AddressFromDomain(0, *a)
	return &dto
}

func addressToDomain(dto *orderrepo.AddressDTO) (*order.Address, error) {
	if dto == nil {
		return nil, nil
	}
	a, err := orderrepo.AddressToDomain(*dto)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func fromDomain(g *guestorder.GuestOrder) GuestOrderDTO {
	dto := GuestOrderDTO{
		ID:           g.ID().Bytes(),
		ServiceType:  int(g.ServiceType()),
		Origin:       addressFromDomain(g.Origin()),
		Destination:  addressFromDomain(g.Destination()),
		Workers:      g.Workers(),
		WalkDistance: g.WalkDistance(),
		HeavyItems:   selectionsFromDomain(g.HeavyItems()),
		FactorIDs:    append([]int64{}, g.FactorIDs()...),
		Cart:         selectionsFromDomain(g.Cart()),
		ScheduledAt:  g.ScheduledAt(),
		DraftPrice:   g.DraftPrice().Int64(),
		CreatedAt:    g.CreatedAt(),
		UpdatedAt:    g.UpdatedAt(),
		ReconciledAt: g.ReconciledAt(),
		OrderID:      g.OrderID(),
	}
	if g.UserID() != nil {
		userID := g.UserID().Bytes()
		dto.UserID = &userID
	}
	return dto
}

func toDomain(dto GuestOrderDTO) (*guestorder.GuestOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	origin, err := addressToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := addressToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}
	heavyItems, err := selectionsToDomain(dto.HeavyItems)
	if err != nil {
		return nil, err
	}
	cart, err := selectionsToDomain(dto.Cart)
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		parsed, parseErr := kernel.UUIDFromBytes(dto.UserID[:])
		if parseErr != nil {
			return nil, parseErr
		}
		userID = &parsed
	}

	var factorIDs []int64
	if len(dto.FactorIDs) > 0 {
		factorIDs = dto.FactorIDs
	}

	return guestorder.RestoreGuestOrder(
		id,
		kernel.ServiceType(dto.ServiceType),
		origin, destination,
		dto.Workers, dto.WalkDistance,
		heavyItems,
		factorIDs,
		cart,
		dto.ScheduledAt,
		kernel.Money(dto.DraftPrice),
		dto.CreatedAt, dto.UpdatedAt,
		dto.ReconciledAt,
		userID,
		dto.OrderID,
	), nil
}
