// Package ticket provides the support Ticket aggregate: a conversation between
// a user and the admins, optionally about one order.
package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

var (
	ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")

	ErrTicketClosed = errs.NewRuleViolationError("TicketClosed", "ticket is closed")
)

type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusAnswered
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusAnswered:
		return "Answered"
	case StatusClosed:
		return "Closed"
	case StatusUnknown:
	}
	return "Unknown"
}

func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusOpen, StatusAnswered, StatusClosed} {
		if st.String() == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a ticket status", s))
}

type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityUnknown:
	}
	return "unknown"
}

// ParsePriority defaults an empty string to PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}
	for _, p := range []Priority{PriorityLow, PriorityNormal, PriorityHigh} {
		if p.String() == s {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a priority", s))
}

// Message is one entry of the conversation. Seq starts at 1 and is unique per ticket.
type Message struct {
	Seq      int
	SenderID kernel.UUID
	Body     string
	IsAdmin  bool
	SentAt   time.Time
}

type Ticket struct {
	id        int64
	ownerID   kernel.UUID
	subject   string
	status    Status
	priority  Priority
	orderID   *int64
	messages  []Message
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTicket opens a ticket with body as its first message.
func NewTicket(owner kernel.Actor, subject, body string, priority Priority, orderID *int64, now time.Time) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)

	var errList []error
	errList = append(errList, owner.Validate())
	if subject == "" {
		errList = append(errList, errs.NewValueIsRequiredError("subject"))
	}
	if body == "" {
		errList = append(errList, errs.NewValueIsRequiredError("body"))
	}
	if priority < PriorityLow || priority > PriorityHigh {
		errList = append(errList, errs.NewValueIsInvalidError("priority"))
	}
	if orderID != nil && *orderID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("order_id"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	at := now.UTC()
	return &Ticket{
		ownerID:  owner.UserID,
		subject:  subject,
		status:   StatusOpen,
		priority: priority,
		orderID:  orderID,
		messages: []Message{{
			Seq:      1,
			SenderID: owner.UserID,
			Body:     body,
			IsAdmin:  owner.IsAdmin(),
			SentAt:   at,
		}},
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

func RestoreTicket(
	id int64,
	ownerID kernel.UUID,
	subject string,
	status Status,
	priority Priority,
	orderID *int64,
	messages []Message,
	createdAt, updatedAt time.Time,
) *Ticket {
	return &Ticket{
		id:            id,
		ownerID:       ownerID,
		subject:       subject,
		status:        status,
		priority:      priority,
		orderID:       orderID,
		messages:      messages,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}
	return nil
}

func (t *Ticket) ID() int64            { return t.id }
func (t *Ticket) OwnerID() kernel.UUID { return t.ownerID }
func (t *Ticket) Subject() string      { return t.subject }
func (t *Ticket) Status() Status       { return t.status }
func (t *Ticket) Priority() Priority   { return t.priority }
func (t *Ticket) OrderID() *int64      { return t.orderID }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }
func (t *Ticket) Messages() []Message  { return append([]Message(nil), t.messages...) }

func (t *Ticket) BindID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("ticket id", fmt.Errorf("%d is not positive", id))
	}
	t.id = id
	return nil
}

func (t *Ticket) IsVisibleTo(actor kernel.Actor) bool {
	return actor.IsAdmin() || actor.UserID.IsEqual(t.ownerID)
}

// Reply appends a message. Admin replies mark the ticket Answered,
// owner replies reopen it.
func (t *Ticket) Reply(actor kernel.Actor, body string, now time.Time) (Message, error) {
	if !t.IsVisibleTo(actor) {
		return Message{}, errs.NewAccessDeniedError(fmt.Sprintf("reply to ticket %d", t.id))
	}
	if t.status == StatusClosed {
		return Message{}, ErrTicketClosed
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, errs.NewValueIsRequiredError("body")
	}

	msg := Message{
		Seq:      len(t.messages) + 1,
		SenderID: actor.UserID,
		Body:     body,
		IsAdmin:  actor.IsAdmin(),
		SentAt:   now.UTC(),
	}
	t.messages = append(t.messages, msg)
	if msg.IsAdmin {
		t.status = StatusAnswered
	} else {
		t.status = StatusOpen
	}
	t.updatedAt = msg.SentAt
	return msg, nil
}

func (t *Ticket) Close(actor kernel.Actor, now time.Time) error {
	if !t.IsVisibleTo(actor) {
		return errs.NewAccessDeniedError(fmt.Sprintf("close ticket %d", t.id))
	}
	if t.status == StatusClosed {
		return ErrTicketClosed
	}
	t.status = StatusClosed
	t.updatedAt = now.UTC()
	return nil
}
