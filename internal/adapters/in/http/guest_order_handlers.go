package http

import (
	"net/http"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type UpdateGuestOrderResponse struct {
	Draft GuestOrderResponse `json:"draft"`
	Quote *QuoteResponse     `json:"quote,omitempty"`
}

// GetQuote handles POST /api/v1/quotes. Nothing is stored.
func (s *Server) GetQuote(c echo.Context) error {
	var req QuoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.toDomain()
	if err != nil {
		return err
	}
	q, err := queries.NewGetQuoteQuery(input)
	if err != nil {
		return err
	}

	quote, err := s.h.GetQuote.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newQuoteResponse(quote))
}

// StartGuestOrder handles POST /api/v1/guest-orders.
func (s *Server) StartGuestOrder(c echo.Context) error {
	var req GuestOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	draft, err := s.h.StartGuestOrder.Handle(c.Request().Context(), commands.NewStartGuestOrderCommand(patch))
	if err != nil {
		return err
	}

	view, err := s.guestOrderView(c, draft.ID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// GetGuestOrder handles GET /api/v1/guest-orders/:id.
func (s *Server) GetGuestOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	view, err := s.guestOrderView(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateGuestOrder handles PATCH /api/v1/guest-orders/:id. The quote is
// present once the draft has everything pricing needs.
func (s *Server) UpdateGuestOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req GuestOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateGuestOrderCommand(id, patch)
	if err != nil {
		return err
	}

	res, err := s.h.UpdateGuestOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	view, err := s.guestOrderView(c, id)
	if err != nil {
		return err
	}
	out := UpdateGuestOrderResponse{Draft: view}
	if res.Quote != nil {
		q := newQuoteResponse(*res.Quote)
		out.Quote = &q
	}
	return c.JSON(http.StatusOK, out)
}

// ReconcileGuestOrder handles POST /api/v1/guest-orders/:id/reconcile.
func (s *Server) ReconcileGuestOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	actor := mustActor(c)
	cmd, err := commands.NewReconcileGuestOrderCommand(actor, id)
	if err != nil {
		return err
	}

	o, err := s.h.ReconcileGuestOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	view, err := s.orderView(c, actor, o.ID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

func (s *Server) guestOrderView(c echo.Context, id kernel.UUID) (GuestOrderResponse, error) {
	q, err := queries.NewGetGuestOrderQuery(id)
	if err != nil {
		return GuestOrderResponse{}, err
	}
	view, err := s.h.GetGuestOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return GuestOrderResponse{}, err
	}
	return newGuestOrderResponse(view), nil
}
