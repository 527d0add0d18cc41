package ports

import (
	"context"

	"moving/internal/core/domain/model/ticket"
)

type TicketRepository interface {
	// Add stores the ticket with its messages and binds the new id.
	Add(ctx context.Context, aggregate *ticket.Ticket) error

	// Update stores the ticket and appends messages not yet persisted.
	Update(ctx context.Context, aggregate *ticket.Ticket) error

	Get(ctx context.Context, id int64) (*ticket.Ticket, error)

	GetForUpdate(ctx context.Context, id int64) (*ticket.Ticket, error)
}
