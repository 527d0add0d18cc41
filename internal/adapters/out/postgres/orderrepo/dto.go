// Package orderrepo maps the Order aggregate onto the orders table and its
// address and item child tables.
package orderrepo

import (
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID           int64          `gorm:"primaryKey;autoIncrement"`
	TrackingCode string         `gorm:"type:varchar(16);not null;uniqueIndex"`
	CustomerID   *uuid.UUID     `gorm:"type:uuid;index"`
	DriverID     *uuid.UUID     `gorm:"type:uuid;index"`
	ServiceType  int            `gorm:"type:smallint;not null"`
	Status       int            `gorm:"type:smallint;not null;index"`
	FinalPrice   int64          `gorm:"not null"`
	Surcharges   []SurchargeDTO `gorm:"serializer:json;type:jsonb"`
	ScheduledAt  *time.Time
	CreatedAt    time.Time  `gorm:"not null;index"`
	GuestOrderID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Addresses []AddressDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Items     []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is stored in order_addresses and, serialized as JSON, inside
// guest order drafts.
type AddressDTO struct {
	OrderID     int64   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Kind        int     `gorm:"primaryKey;autoIncrement:false;type:smallint" json:"kind"`
	Line        string  `gorm:"type:varchar(500);not null" json:"line"`
	Lat         float64 `gorm:"not null" json:"lat"`
	Lng         float64 `gorm:"not null" json:"lng"`
	Floor       int     `gorm:"not null" json:"floor"`
	HasElevator bool    `gorm:"not null" json:"has_elevator"`
}

func (AddressDTO) TableName() string {
	return "order_addresses"
}

type ItemDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"not null;index"`
	ProductID int64  `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(255);not null"`
	Quantity  int64  `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type SurchargeDTO struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// AddressFromDomain converts an address for storage.
func AddressFromDomain(orderID int64, a order.Address) AddressDTO {
	return AddressDTO{
		OrderID:     orderID,
		Kind:        int(a.Kind()),
		Line:        a.Line(),
		Lat:         a.Location().Lat(),
		Lng:         a.Location().Lng(),
		Floor:       a.Floor(),
		HasElevator: a.HasElevator(),
	}
}

// AddressToDomain rebuilds a validated address.
func AddressToDomain(dto AddressDTO) (order.Address, error) {
	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(order.AddressKind(dto.Kind), dto.Line, loc, dto.Floor, dto.HasElevator)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func fromDomain(o *order.Order) OrderDTO {
	addresses := make([]AddressDTO, 0, 2)
	if o.Origin() != nil {
		addresses = append(addresses, AddressFromDomain(o.ID(), *o.Origin()))
	}
	addresses = append(addresses, AddressFromDomain(o.ID(), o.Destination()))

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   o.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Int64(),
		})
	}

	surcharges := make([]SurchargeDTO, 0, len(o.Surcharges()))
	for _, s := range o.Surcharges() {
		surcharges = append(surcharges, SurchargeDTO{Code: s.Code, Name: s.Name, Amount: s.Amount.Int64()})
	}

	return OrderDTO{
		ID:           o.ID(),
		TrackingCode: o.TrackingCode().String(),
		CustomerID:   uuidPtr(o.CustomerID()),
		DriverID:     uuidPtr(o.DriverID()),
		ServiceType:  int(o.ServiceType()),
		Status:       int(o.Status()),
		FinalPrice:   o.FinalPrice().Int64(),
		Surcharges:   surcharges,
		ScheduledAt:  o.ScheduledAt(),
		CreatedAt:    o.CreatedAt(),
		GuestOrderID: uuidPtr(o.GuestOrderID()),
		Addresses:    addresses,
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	customerID, err := kernelUUIDPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernelUUIDPtr(dto.DriverID)
	if err != nil {
		return nil, err
	}
	guestOrderID, err := kernelUUIDPtr(dto.GuestOrderID)
	if err != nil {
		return nil, err
	}

	var origin *order.Address
	var destination order.Address
	for _, a := range dto.Addresses {
		addr, addrErr := AddressToDomain(a)
		if addrErr != nil {
			return nil, addrErr
		}
		if addr.Kind() == order.AddressOrigin {
			origin = &addr
		} else {
			destination = addr
		}
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		item, itemErr := order.NewItem(i.ProductID, i.Name, i.Quantity, kernel.Money(i.UnitPrice))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	surcharges := make([]order.Surcharge, 0, len(dto.Surcharges))
	for _, s := range dto.Surcharges {
		surcharges = append(surcharges, order.Surcharge{Code: s.Code, Name: s.Name, Amount: kernel.Money(s.Amount)})
	}

	return order.RestoreOrder(
		dto.ID,
		kernel.TrackingCode(dto.TrackingCode),
		customerID,
		driverID,
		kernel.ServiceType(dto.ServiceType),
		order.Status(dto.Status),
		origin,
		destination,
		items,
		surcharges,
		kernel.Money(dto.FinalPrice),
		dto.ScheduledAt,
		dto.CreatedAt,
		guestOrderID,
	), nil
}
