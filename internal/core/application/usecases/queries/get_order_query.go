package queries

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByTrackingCodeQuery constructor",
)

// GetOrderQuery looks an order up either by numeric id or by tracking code.
// Only admins and the order's customer or driver may read it.
type GetOrderQuery struct {
	actor        kernel.Actor
	id           int64
	trackingCode kernel.TrackingCode
	guard        guard.ConstructorGuard
}

func NewGetOrderQuery(actor kernel.Actor, id int64) (GetOrderQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if id <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidError("order_id")
	}

	return GetOrderQuery{actor: actor, id: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByTrackingCodeQuery(actor kernel.Actor, trackingCode string) (GetOrderQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	code, err := kernel.ParseTrackingCode(trackingCode)
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{actor: actor, trackingCode: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// ID is zero when the query is by tracking code.
func (q GetOrderQuery) ID() int64 {
	return q.id
}

func (q GetOrderQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}
