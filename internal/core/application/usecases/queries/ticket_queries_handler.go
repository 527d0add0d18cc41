package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/ticket"
	"moving/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketSummary struct {
	ID        int64
	OwnerID   kernel.UUID
	Subject   string
	Status    ticket.Status
	Priority  ticket.Priority
	OrderID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TicketMessageView struct {
	Seq      int
	SenderID kernel.UUID
	Body     string
	IsAdmin  bool
	SentAt   time.Time
}

type TicketView struct {
	TicketSummary
	Messages []TicketMessageView
}

type ticketRow struct {
	ID        int64
	OwnerID   uuid.UUID
	Subject   string
	Status    int
	Priority  int
	OrderID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r ticketRow) summary() (TicketSummary, error) {
	ownerID, err := kernel.UUIDFromBytes(r.OwnerID[:])
	if err != nil {
		return TicketSummary{}, err
	}
	return TicketSummary{
		ID:        r.ID,
		OwnerID:   ownerID,
		Subject:   r.Subject,
		Status:    ticket.Status(r.Status),
		Priority:  ticket.Priority(r.Priority),
		OrderID:   r.OrderID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

const selectTicketColumns = `
	SELECT id, owner_id, subject, status, priority, order_id, created_at, updated_at
	FROM tickets`

type GetTicketQueryHandler struct {
	db *gorm.DB
}

func NewGetTicketQueryHandler(db *gorm.DB) GetTicketQueryHandler {
	return GetTicketQueryHandler{db: db}
}

func (h GetTicketQueryHandler) Handle(ctx context.Context, query GetTicketQuery) (TicketView, error) {
	if err := query.Validate(); err != nil {
		return TicketView{}, err
	}
	db := h.db.WithContext(ctx)

	var rows []ticketRow
	if err := db.Raw(selectTicketColumns+` WHERE id = ?`, query.ID()).Scan(&rows).Error; err != nil {
		return TicketView{}, err
	}
	if len(rows) == 0 {
		return TicketView{}, errs.NewObjectNotFoundError("ticket", query.ID())
	}

	summary, err := rows[0].summary()
	if err != nil {
		return TicketView{}, err
	}
	actor := query.Actor()
	if !actor.IsAdmin() && !actor.UserID.IsEqual(summary.OwnerID) {
		return TicketView{}, errs.NewAccessDeniedError(fmt.Sprintf("read ticket %d", summary.ID))
	}

	var messages []struct {
		Seq      int
		SenderID uuid.UUID
		Body     string
		IsAdmin  bool
		SentAt   time.Time
	}
	err = db.Raw(`
		SELECT seq, sender_id, body, is_admin, sent_at
		FROM ticket_messages
		WHERE ticket_id = ?
		ORDER BY seq
	`, query.ID()).Scan(&messages).Error
	if err != nil {
		return TicketView{}, err
	}

	view := TicketView{TicketSummary: summary, Messages: make([]TicketMessageView, 0, len(messages))}
	for _, m := range messages {
		senderID, idErr := kernel.UUIDFromBytes(m.SenderID[:])
		if idErr != nil {
			return TicketView{}, idErr
		}
		view.Messages = append(view.Messages, TicketMessageView{
			Seq:      m.Seq,
			SenderID: senderID,
			Body:     m.Body,
			IsAdmin:  m.IsAdmin,
			SentAt:   m.SentAt,
		})
	}
	return view, nil
}

type ListTicketsQueryHandler struct {
	db *gorm.DB
}

func NewListTicketsQueryHandler(db *gorm.DB) ListTicketsQueryHandler {
	return ListTicketsQueryHandler{db: db}
}

// Handle returns tickets most recently active first.
func (h ListTicketsQueryHandler) Handle(ctx context.Context, query ListTicketsQuery) ([]TicketSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if actor := query.Actor(); !actor.IsAdmin() {
		where = append(where, "owner_id = ?")
		args = append(args, actor.UserID.Bytes())
	}
	if query.Status() != nil {
		where = append(where, "status = ?")
		args = append(args, int(*query.Status()))
	}

	sql := selectTicketColumns
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	var rows []ticketRow
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	tickets := make([]TicketSummary, 0, len(rows))
	for _, row := range rows {
		summary, err := row.summary()
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, summary)
	}
	return tickets, nil
}
