package http

import (
	"net/http"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/ticket"

	"github.com/labstack/echo/v4"
)

type CreateTicketRequest struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
	OrderID  *int64 `json:"order_id"`
}

type ReplyTicketRequest struct {
	Body string `json:"body"`
}

// CreateTicket handles POST /api/v1/tickets.
func (s *Server) CreateTicket(c echo.Context) error {
	var req CreateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	priority := ticket.PriorityNormal
	if req.Priority != "" {
		p, err := ticket.ParsePriority(req.Priority)
		if err != nil {
			return err
		}
		priority = p
	}

	actor := mustActor(c)
	cmd, err := commands.NewCreateTicketCommand(actor, req.Subject, req.Body, priority, req.OrderID)
	if err != nil {
		return err
	}
	t, err := s.h.CreateTicket.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondTicket(c, actor, t.ID(), http.StatusCreated)
}

// ListTickets handles GET /api/v1/tickets?status=&limit=&offset=.
func (s *Server) ListTickets(c echo.Context) error {
	var status *ticket.Status
	if raw := c.QueryParam("status"); raw != "" {
		st, err := ticket.ParseStatus(raw)
		if err != nil {
			return err
		}
		status = &st
	}
	limit, offset := page(c)

	q, err := queries.NewListTicketsQuery(mustActor(c), status, limit, offset)
	if err != nil {
		return err
	}
	tickets, err := s.h.ListTickets.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	out := make([]TicketSummaryResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, newTicketSummaryResponse(t))
	}
	return c.JSON(http.StatusOK, out)
}

// GetTicket handles GET /api/v1/tickets/:id.
func (s *Server) GetTicket(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	return s.respondTicket(c, mustActor(c), id, http.StatusOK)
}

// ReplyTicket handles POST /api/v1/tickets/:id/replies.
func (s *Server) ReplyTicket(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	var req ReplyTicketRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	actor := mustActor(c)
	cmd, err := commands.NewReplyTicketCommand(actor, id, req.Body)
	if err != nil {
		return err
	}
	if _, err = s.h.ReplyTicket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTicket(c, actor, id, http.StatusCreated)
}

// CloseTicket handles POST /api/v1/tickets/:id/close.
func (s *Server) CloseTicket(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}

	actor := mustActor(c)
	cmd, err := commands.NewCloseTicketCommand(actor, id)
	if err != nil {
		return err
	}
	if _, err = s.h.CloseTicket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTicket(c, actor, id, http.StatusOK)
}

func (s *Server) respondTicket(c echo.Context, actor kernel.Actor, id int64, status int) error {
	q, err := queries.NewGetTicketQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetTicket.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(status, newTicketResponse(view))
}
