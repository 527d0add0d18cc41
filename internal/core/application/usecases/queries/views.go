package queries

import (
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type AddressView struct {
	Kind        order.AddressKind
	Line        string
	Lat         float64
	Lng         float64
	Floor       int
	HasElevator bool
}

type ItemView struct {
	ProductID  int64
	Name       string
	Quantity   int64
	UnitPrice  kernel.Money
	TotalPrice kernel.Money
}

type SurchargeView struct {
	Code   string       `json:"code"`
	Name   string       `json:"name"`
	Amount kernel.Money `json:"amount"`
}

// OrderSummary is the list form of an order.
type OrderSummary struct {
	ID           int64
	TrackingCode string
	CustomerID   *kernel.UUID
	DriverID     *kernel.UUID
	ServiceType  kernel.ServiceType
	Status       order.Status
	FinalPrice   kernel.Money
	ScheduledAt  *time.Time
	CreatedAt    time.Time
}

// OrderView is the full read model of one order.
type OrderView struct {
	OrderSummary
	GuestOrderID *kernel.UUID
	Origin       *AddressView
	Destination  *AddressView
	Items        []ItemView
	Surcharges   []SurchargeView
}

// orderRow mirrors the orders table columns read by the order queries.
type orderRow struct {
	ID           int64
	TrackingCode string
	CustomerID   *uuid.UUID
	DriverID     *uuid.UUID
	ServiceType  int
	Status       int
	FinalPrice   int64
	Surcharges   []SurchargeView `gorm:"serializer:json"`
	ScheduledAt  *time.Time
	CreatedAt    time.Time
	GuestOrderID *uuid.UUID
}

func (r orderRow) summary() (OrderSummary, error) {
	customerID, err := optionalUUID(r.CustomerID)
	if err != nil {
		return OrderSummary{}, err
	}
	driverID, err := optionalUUID(r.DriverID)
	if err != nil {
		return OrderSummary{}, err
	}

	return OrderSummary{
		ID:           r.ID,
		TrackingCode: r.TrackingCode,
		CustomerID:   customerID,
		DriverID:     driverID,
		ServiceType:  kernel.ServiceType(r.ServiceType),
		Status:       order.Status(r.Status),
		FinalPrice:   kernel.Money(r.FinalPrice),
		ScheduledAt:  r.ScheduledAt,
		CreatedAt:    r.CreatedAt,
	}, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pageSize clamps a requested limit into [1, maxPageSize], 0 meaning the default.
func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}
