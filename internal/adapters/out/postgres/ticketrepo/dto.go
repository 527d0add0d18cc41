package ticketrepo

import (
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

type TicketDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject   string    `gorm:"type:varchar(255);not null"`
	Status    int       `gorm:"type:smallint;not null;index"`
	Priority  int       `gorm:"type:smallint;not null"`
	OrderID   *int64    `gorm:"index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`

	Messages []MessageDTO `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (TicketDTO) TableName() string {
	return "tickets"
}

// MessageDTO rows are append only; (ticket_id, seq) identifies a message.
type MessageDTO struct {
	TicketID int64     `gorm:"primaryKey;autoIncrement:false"`
	Seq      int       `gorm:"primaryKey;autoIncrement:false"`
	SenderID uuid.UUID `gorm:"type:uuid;not null"`
	Body     string    `gorm:"type:text;not null"`
	IsAdmin  bool      `gorm:"not null"`
	SentAt   time.Time `gorm:"not null"`
}

func (MessageDTO) TableName() string {
	return "ticket_messages"
}

func messagesFromDomain(ticketID int64, in []ticket.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(in))
	for _, m := range in {
		out = append(out, MessageDTO{
			TicketID: ticketID,
			Seq:      m.Seq,
			SenderID: m.SenderID.Bytes(),
			Body:     m.Body,
			IsAdmin:  m.IsAdmin,
			SentAt:   m.SentAt,
		})
	}
	return out
}

func fromDomain(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
		ID:        t.ID(),
		OwnerID:   t.OwnerID().Bytes(),
		Subject:   t.Subject(),
		Status:    int(t.Status()),
		Priority:  int(t.Priority()),
		OrderID:   t.OrderID(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
		Messages:  messagesFromDomain(t.ID(), t.Messages()),
	}
}

func toDomain(dto TicketDTO) (*ticket.Ticket, error) {
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	messages := make([]ticket.Message, 0, len(dto.Messages))
	for _, m := range dto.Messages {
		senderID, senderErr := kernel.UUIDFromBytes(m.SenderID[:])
		if senderErr != nil {
			return nil, senderErr
		}
		messages = append(messages, ticket.Message{
			Seq:      m.Seq,
			SenderID: senderID,
			Body:     m.Body,
			IsAdmin:  m.IsAdmin,
			SentAt:   m.SentAt,
		})
	}

	return ticket.RestoreTicket(
		dto.ID,
		ownerID,
		dto.Subject,
		ticket.Status(dto.Status),
		ticket.Priority(dto.Priority),
		dto.OrderID,
		messages,
		dto.CreatedAt, dto.UpdatedAt,
	), nil
}
