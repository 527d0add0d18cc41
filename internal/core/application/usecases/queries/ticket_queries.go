package queries

import (
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/ticket"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var (
	ErrGetTicketQueryIsNotConstructed   = errors.New("GetTicketQuery must be created via NewGetTicketQuery constructor")
	ErrListTicketsQueryIsNotConstructed = errors.New("ListTicketsQuery must be created via NewListTicketsQuery constructor")
)

type GetTicketQuery struct {
	actor kernel.Actor
	id    int64
	guard guard.ConstructorGuard
}

func NewGetTicketQuery(actor kernel.Actor, id int64) (GetTicketQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetTicketQuery{}, err
	}
	if id <= 0 {
		return GetTicketQuery{}, errs.NewValueIsInvalidError("ticket_id")
	}
	return GetTicketQuery{actor: actor, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTicketQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketQueryIsNotConstructed)
}

func (q GetTicketQuery) Actor() kernel.Actor { return q.actor }
func (q GetTicketQuery) ID() int64           { return q.id }

// ListTicketsQuery lists the actor's own tickets, or all tickets for admins.
type ListTicketsQuery struct {
	actor  kernel.Actor
	status *ticket.Status
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

func NewListTicketsQuery(actor kernel.Actor, status *ticket.Status, limit, offset int) (ListTicketsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListTicketsQuery{}, err
	}
	if status != nil && (*status < ticket.StatusOpen || *status > ticket.StatusClosed) {
		return ListTicketsQuery{}, errs.NewValueIsInvalidError("status")
	}
	if offset < 0 {
		offset = 0
	}
	return ListTicketsQuery{
		actor:  actor,
		status: status,
		limit:  pageSize(limit),
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListTicketsQuery) Validate() error {
	return q.guard.Validate(ErrListTicketsQueryIsNotConstructed)
}

func (q ListTicketsQuery) Actor() kernel.Actor    { return q.actor }
func (q ListTicketsQuery) Status() *ticket.Status { return q.status }
func (q ListTicketsQuery) Limit() int             { return q.limit }
func (q ListTicketsQuery) Offset() int            { return q.offset }
