package order

import (
	"errors"
	"fmt"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder, NewOrderPendingApproval or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a single moving or packing-supplies job.
//
// Order follows these invariants:
//   - Exactly one destination; an origin is required for moving orders only
//   - finalPrice equals the sum of item totals and surcharges
//   - The tracking code never changes after creation
//   - Status only changes through the transition table
type Order struct {
	// id is assigned by the store on first save; zero until then
	id int64

	trackingCode kernel.TrackingCode

	// customerID is nil only for restored legacy rows
	customerID *kernel.UUID

	// driverID is nil until an admin assigns a driver
	driverID *kernel.UUID

	serviceType kernel.ServiceType
	status      Status

	origin      *Address
	destination Address

	items      []Item
	surcharges []Surcharge
	finalPrice kernel.Money

	scheduledAt *time.Time
	createdAt   time.Time

	// guestOrderID points at the guest draft this order was converted from
	guestOrderID *kernel.UUID

	isConstructed bool
}

// NewOrder creates an order owned by customerID in PendingPayment.
//
// Example:
//
//	dst, _ := order.NewAddress(order.AddressDestination, "Vanak Sq.", loc, 3, true)
//	o, err := order.NewOrder(customerID, kernel.ServicePackingSupplies, nil, dst, nil)
func NewOrder(
	customerID kernel.UUID,
	serviceType kernel.ServiceType,
	origin *Address,
	destination Address,
	scheduledAt *time.Time,
) (*Order, error) {
	return newOrder(PendingPayment, customerID, serviceType, origin, destination, scheduledAt)
}

// NewOrderPendingApproval creates an order that skips payment,
// used when an admin converts a draft on behalf of a customer.
func NewOrderPendingApproval(
	customerID kernel.UUID,
	serviceType kernel.ServiceType,
	origin *Address,
	destination Address,
	scheduledAt *time.Time,
) (*Order, error) {
	return newOrder(PendingAdminApproval, customerID, serviceType, origin, destination, scheduledAt)
}

func newOrder(
	status Status,
	customerID kernel.UUID,
	serviceType kernel.ServiceType,
	origin *Address,
	destination Address,
	scheduledAt *time.Time,
) (*Order, error) {
	o := &Order{
		trackingCode:  kernel.NewTrackingCode(),
		status:        status,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomer(customerID),
		o.setServiceType(serviceType),
		o.setAddresses(serviceType, origin, destination),
	); err != nil {
		return nil, err
	}

	if scheduledAt != nil {
		at := scheduledAt.UTC()
		o.scheduledAt = &at
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state without generating
// new identity. Only the store should call it.
func RestoreOrder(
	id int64,
	trackingCode kernel.TrackingCode,
	customerID *kernel.UUID,
	driverID *kernel.UUID,
	serviceType kernel.ServiceType,
	status Status,
	origin *Address,
	destination Address,
	items []Item,
	surcharges []Surcharge,
	finalPrice kernel.Money,
	scheduledAt *time.Time,
	createdAt time.Time,
	guestOrderID *kernel.UUID,
) *Order {
	return &Order{
		id:            id,
		trackingCode:  trackingCode,
		customerID:    customerID,
		driverID:      driverID,
		serviceType:   serviceType,
		status:        status,
		origin:        origin,
		destination:   destination,
		items:         items,
		surcharges:    surcharges,
		finalPrice:    finalPrice,
		scheduledAt:   scheduledAt,
		createdAt:     createdAt,
		guestOrderID:  guestOrderID,
		isConstructed: true,
	}
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

// BindID records the identifier assigned by the store. It may only be called once.
func (o *Order) BindID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", id))
	}
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("already bound to %d", o.id))
	}
	o.id = id
	return nil
}

func (o *Order) TrackingCode() kernel.TrackingCode {
	return o.trackingCode
}

func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

func (o *Order) ServiceType() kernel.ServiceType {
	return o.serviceType
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Origin() *Address {
	return o.origin
}

func (o *Order) Destination() Address {
	return o.destination
}

func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) Surcharges() []Surcharge {
	return append([]Surcharge(nil), o.surcharges...)
}

func (o *Order) FinalPrice() kernel.Money {
	return o.finalPrice
}

func (o *Order) ScheduledAt() *time.Time {
	return o.scheduledAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) GuestOrderID() *kernel.UUID {
	return o.guestOrderID
}

// ConvertedFrom records the guest draft that produced this order.
func (o *Order) ConvertedFrom(guestOrderID kernel.UUID) error {
	if err := guestOrderID.Validate(); err != nil {
		return err
	}
	o.guestOrderID = &guestOrderID
	return nil
}

// Price replaces the priced lines and recomputes the final price.
// Pricing is only possible before the order is accepted.
func (o *Order) Price(items []Item, surcharges []Surcharge) error {
	if o.status.IsTerminal() || o.status.IsAccepted() {
		return ErrInvalidTransition.WithCause(fmt.Errorf("%s order cannot be repriced", o.status))
	}

	amounts := make([]kernel.Money, 0, len(items)+len(surcharges))
	for _, item := range items {
		amounts = append(amounts, item.TotalPrice())
	}
	for _, s := range surcharges {
		amounts = append(amounts, s.Amount)
	}
	total, err := kernel.Sum(amounts...)
	if err != nil {
		return err
	}

	o.items = append([]Item(nil), items...)
	o.surcharges = append([]Surcharge(nil), surcharges...)
	o.finalPrice = total
	return nil
}

// IsVisibleTo reports whether actor may read the order.
func (o *Order) IsVisibleTo(actor kernel.Actor) bool {
	return actor.IsAdmin() || actor.Is(o.customerID) || actor.Is(o.driverID)
}

// Transition applies action on behalf of actor.
//
// The move is first looked up in the transition table (ErrInvalidTransition),
// then the actor's authority is checked (AccessDeniedError), then
// action-specific preconditions (ErrDriverRequired for approval).
// On any error the order is left unchanged.
func (o *Order) Transition(actor kernel.Actor, action Action) error {
	next, err := Next(o.status, action)
	if err != nil {
		return err
	}

	if err = o.authorize(actor, action); err != nil {
		return err
	}

	if action == ActionApprove && o.driverID == nil {
		return ErrDriverRequired
	}

	o.status = next
	return nil
}

// AssignDriver sets or replaces the driver. Admin only, and not once the
// order has reached a terminal status.
func (o *Order) AssignDriver(actor kernel.Actor, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrInvalidTransition.WithCause(fmt.Errorf("cannot assign a driver to a %s order", o.status))
	}
	if !actor.IsAdmin() {
		return errs.NewAccessDeniedError("assign driver")
	}

	o.driverID = &driverID
	return nil
}

func (o *Order) authorize(actor kernel.Actor, action Action) error {
	if actor.IsAdmin() {
		return nil
	}

	allowed := false
	switch action {
	case ActionConfirmPayment:
		allowed = actor.Is(o.customerID)
	case ActionComplete:
		allowed = actor.Role == kernel.RoleDriver && actor.Is(o.driverID)
	case ActionCancel:
		allowed = actor.Is(o.customerID) && !o.status.IsAccepted()
	case ActionApprove, ActionUnknown:
	}

	if !allowed {
		return errs.NewAccessDeniedError(fmt.Sprintf("%s order %d", action, o.id))
	}
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = &customerID
	return nil
}

func (o *Order) setServiceType(serviceType kernel.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	o.serviceType = serviceType
	return nil
}

func (o *Order) setAddresses(serviceType kernel.ServiceType, origin *Address, destination Address) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	if destination.Kind() != AddressDestination {
		return errs.NewValueIsInvalidErrorWithCause("destination", errors.New("address kind must be destination"))
	}

	if serviceType.NeedsOrigin() {
		if origin == nil {
			return errs.NewValueIsRequiredError("origin")
		}
		if err := origin.Validate(); err != nil {
			return err
		}
		if origin.Kind() != AddressOrigin {
			return errs.NewValueIsInvalidErrorWithCause("origin", errors.New("address kind must be origin"))
		}
		o.origin = origin
	}

	o.destination = destination
	return nil
}
