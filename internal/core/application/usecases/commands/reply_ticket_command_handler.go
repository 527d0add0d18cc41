package commands

import (
	"context"
	"time"

	"moving/internal/core/domain/model/ticket"
	"moving/internal/core/ports"
	"moving/internal/pkg/logger"
)

type ReplyTicketCommandHandler struct {
	uowFactory TicketUoWFactory
	notifier   ports.Notifier
	log        logger.ILogger
	now        func() time.Time
}

func NewReplyTicketCommandHandler(
	uowFactory TicketUoWFactory,
	notifier ports.Notifier,
	log logger.ILogger,
) ReplyTicketCommandHandler {
	return ReplyTicketCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With(logger.String("component", "reply_ticket")),
		now:        time.Now,
	}
}

// Handle appends a reply. When an admin answers, the ticket owner is told
// on their direct channel.
func (h ReplyTicketCommandHandler) Handle(ctx context.Context, command ReplyTicketCommand) (*ticket.Ticket, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TicketRepository()
	t, err := repo.GetForUpdate(ctx, command.TicketID())
	if err != nil {
		return nil, err
	}

	msg, err := t.Reply(command.Actor(), command.Body(), h.now())
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if msg.IsAdmin && !msg.SenderID.IsEqual(t.OwnerID()) {
		ownerID := t.OwnerID()
		notify(ctx, h.notifier, h.log, ports.Event{
			Name:   ports.EventNewTicketReply,
			UserID: &ownerID,
			Payload: map[string]any{
				"ticket_id": t.ID(),
				"seq":       msg.Seq,
				"body":      msg.Body,
				"status":    t.Status().String(),
			},
		})
	}

	return t, nil
}
