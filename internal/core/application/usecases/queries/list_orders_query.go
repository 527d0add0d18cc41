package queries

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders visible to the actor, newest first.
// Customers see orders they own, drivers see orders assigned to them,
// admins see everything.
type ListOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. A nil status lists every status;
// limit 0 uses the default page size.
func NewListOrdersQuery(actor kernel.Actor, status *order.Status, limit, offset int) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if offset < 0 {
		offset = 0
	}

	return ListOrdersQuery{
		actor:  actor,
		status: status,
		limit:  pageSize(limit),
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor   { return q.actor }
func (q ListOrdersQuery) Status() *order.Status { return q.status }
func (q ListOrdersQuery) Limit() int            { return q.limit }
func (q ListOrdersQuery) Offset() int           { return q.offset }
