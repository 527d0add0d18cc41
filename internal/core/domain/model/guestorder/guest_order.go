package guestorder

import (
	"errors"
	"fmt"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/services"
	"moving/internal/pkg/errs"
)

// Drafts are held to the same limits the pricing engine enforces.
const (
	MaxWorkers      = services.MaxWorkers
	MaxWalkDistance = services.MaxWalkDistance
)

var (
	ErrGuestOrderIsNotConstructed = errors.New("GuestOrder must be created via NewGuestOrder constructor")

	ErrAlreadyReconciled = errs.NewRuleViolationError("AlreadyReconciled", "guest order has already been reconciled")
	ErrIncomplete        = errs.NewRuleViolationError("GuestOrderIncomplete", "guest order is missing required fields")
)

// Patch carries the fields submitted by one step of the quote flow.
// Nil fields are left untouched.
type Patch struct {
	ServiceType  *kernel.ServiceType
	Origin       *order.Address
	Destination  *order.Address
	Workers      *int
	WalkDistance *int
	HeavyItems   *[]kernel.Selection
	FactorIDs    *[]int64
	Cart         *[]kernel.Selection
	ScheduledAt  *time.Time
}

// GuestOrder is a provisional order created before authentication.
type GuestOrder struct {
	id          kernel.UUID
	serviceType kernel.ServiceType

	origin      *order.Address
	destination *order.Address

	workers      int
	walkDistance int
	heavyItems   []kernel.Selection
	factorIDs    []int64
	cart         []kernel.Selection
	scheduledAt  *time.Time

	draftPrice kernel.Money

	createdAt time.Time
	updatedAt time.Time

	reconciledAt *time.Time
	userID       *kernel.UUID
	orderID      *int64

	isConstructed bool
}

// NewGuestOrder starts an empty draft.
func NewGuestOrder(now time.Time) *GuestOrder {
	return &GuestOrder{
		id:            kernel.NewUUID(),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}
}

// RestoreGuestOrder rebuilds a draft from storage.
func RestoreGuestOrder(
	id kernel.UUID,
	serviceType kernel.ServiceType,
	origin, destination *order.Address,
	workers, walkDistance int,
	heavyItems []kernel.Selection,
	factorIDs []int64,
	cart []kernel.Selection,
	scheduledAt *time.Time,
	draftPrice kernel.Money,
	createdAt, updatedAt time.Time,
	reconciledAt *time.Time,
	userID *kernel.UUID,
	orderID *int64,
) *GuestOrder {
	return &GuestOrder{
		id:            id,
		serviceType:   serviceType,
		origin:        origin,
		destination:   destination,
		workers:       workers,
		walkDistance:  walkDistance,
		heavyItems:    heavyItems,
		factorIDs:     factorIDs,
		cart:          cart,
		scheduledAt:   scheduledAt,
		draftPrice:    draftPrice,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		reconciledAt:  reconciledAt,
		userID:        userID,
		orderID:       orderID,
		isConstructed: true,
	}
}

func (g *GuestOrder) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGuestOrderIsNotConstructed
	}
	return nil
}

func (g *GuestOrder) ID() kernel.UUID                 { return g.id }
func (g *GuestOrder) ServiceType() kernel.ServiceType { return g.serviceType }
func (g *GuestOrder) Origin() *order.Address          { return g.origin }
func (g *GuestOrder) Destination() *order.Address     { return g.destination }
func (g *GuestOrder) Workers() int                    { return g.workers }
func (g *GuestOrder) WalkDistance() int               { return g.walkDistance }
func (g *GuestOrder) HeavyItems() []kernel.Selection  { return g.heavyItems }
func (g *GuestOrder) FactorIDs() []int64              { return g.factorIDs }
func (g *GuestOrder) Cart() []kernel.Selection        { return g.cart }
func (g *GuestOrder) ScheduledAt() *time.Time         { return g.scheduledAt }
func (g *GuestOrder) DraftPrice() kernel.Money        { return g.draftPrice }
func (g *GuestOrder) CreatedAt() time.Time            { return g.createdAt }
func (g *GuestOrder) UpdatedAt() time.Time            { return g.updatedAt }
func (g *GuestOrder) ReconciledAt() *time.Time        { return g.reconciledAt }
func (g *GuestOrder) UserID() *kernel.UUID            { return g.userID }
func (g *GuestOrder) OrderID() *int64                 { return g.orderID }

func (g *GuestOrder) IsReconciled() bool {
	return g.reconciledAt != nil
}

// Apply merges patch into the draft. All fields are validated before any is
// written, so a rejected patch leaves the draft unchanged.
func (g *GuestOrder) Apply(patch Patch, now time.Time) error {
	if g.IsReconciled() {
		return ErrAlreadyReconciled
	}

	if err := patch.validate(); err != nil {
		return err
	}

	if patch.ServiceType != nil {
		g.serviceType = *patch.ServiceType
	}
	if patch.Origin != nil {
		origin := *patch.Origin
		g.origin = &origin
	}
	if patch.Destination != nil {
		destination := *patch.Destination
		g.destination = &destination
	}
	if patch.Workers != nil {
		g.workers = *patch.Workers
	}
	if patch.WalkDistance != nil {
		g.walkDistance = *patch.WalkDistance
	}
	if patch.HeavyItems != nil {
		g.heavyItems = append([]kernel.Selection(nil), *patch.HeavyItems...)
	}
	if patch.FactorIDs != nil {
		g.factorIDs = append([]int64(nil), *patch.FactorIDs...)
	}
	if patch.Cart != nil {
		g.cart = append([]kernel.Selection(nil), *patch.Cart...)
	}
	if patch.ScheduledAt != nil {
		at := patch.ScheduledAt.UTC()
		g.scheduledAt = &at
	}

	g.updatedAt = now.UTC()
	return nil
}

// SetDraftPrice stores the latest quote total shown to the visitor.
func (g *GuestOrder) SetDraftPrice(total kernel.Money) error {
	if g.IsReconciled() {
		return ErrAlreadyReconciled
	}
	g.draftPrice = total
	return nil
}

// Ready reports whether the draft has everything needed to become an order.
func (g *GuestOrder) Ready() error {
	var missing []error
	if g.serviceType.Validate() != nil {
		missing = append(missing, errors.New("service type"))
	}
	if g.destination == nil {
		missing = append(missing, errors.New("destination"))
	}
	if g.serviceType.NeedsOrigin() && g.origin == nil {
		missing = append(missing, errors.New("origin"))
	}
	if g.serviceType == kernel.ServicePackingSupplies && len(g.cart) == 0 {
		missing = append(missing, errors.New("cart"))
	}

	if len(missing) > 0 {
		return ErrIncomplete.WithCause(errors.Join(missing...))
	}
	return nil
}

// Reconcile links the draft to its owner and the order it became.
// It succeeds only once.
func (g *GuestOrder) Reconcile(userID kernel.UUID, orderID int64, now time.Time) error {
	if g.IsReconciled() {
		return ErrAlreadyReconciled
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", orderID))
	}

	at := now.UTC()
	g.reconciledAt = &at
	g.userID = &userID
	g.orderID = &orderID
	g.updatedAt = at
	return nil
}

// IsAbandoned reports whether an unreconciled draft was last touched before cutoff.
func (g *GuestOrder) IsAbandoned(cutoff time.Time) bool {
	return !g.IsReconciled() && g.updatedAt.Before(cutoff)
}

func (p Patch) validate() error {
	var errList []error

	if p.ServiceType != nil {
		errList = append(errList, p.ServiceType.Validate())
	}
	if p.Origin != nil {
		errList = append(errList, p.Origin.Validate())
		if p.Origin.Kind() != order.AddressOrigin {
			errList = append(errList, errs.NewValueIsInvalidError("origin"))
		}
	}
	if p.Destination != nil {
		errList = append(errList, p.Destination.Validate())
		if p.Destination.Kind() != order.AddressDestination {
			errList = append(errList, errs.NewValueIsInvalidError("destination"))
		}
	}
	if p.Workers != nil && (*p.Workers < 0 || *p.Workers > MaxWorkers) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("workers", *p.Workers, 0, MaxWorkers))
	}
	if p.WalkDistance != nil && (*p.WalkDistance < 0 || *p.WalkDistance > MaxWalkDistance) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("walk_distance", *p.WalkDistance, 0, MaxWalkDistance))
	}
	if p.HeavyItems != nil {
		for _, s := range *p.HeavyItems {
			errList = append(errList, s.Validate())
		}
	}
	if p.Cart != nil {
		for _, s := range *p.Cart {
			errList = append(errList, s.Validate())
		}
	}
	if p.FactorIDs != nil {
		for _, id := range *p.FactorIDs {
			if id <= 0 {
				errList = append(errList, errs.NewValueIsInvalidErrorWithCause("factor_id", fmt.Errorf("%d is not positive", id)))
			}
		}
	}

	return errors.Join(errList...)
}
