package http

import (
	"net/http"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

type CreateOrderRequest struct {
	QuoteRequest
	CustomerID  *string    `json:"customer_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type TransitionRequest struct {
	Action string `json:"action"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

type DriverStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.toDomain()
	if err != nil {
		return err
	}
	var customerID *kernel.UUID
	if req.CustomerID != nil {
		id, err := kernel.UUIDFromString(*req.CustomerID)
		if err != nil {
			return err
		}
		customerID = &id
	}

	actor := mustActor(c)
	cmd, err := commands.NewCreateOrderCommand(actor, customerID, input, req.ScheduledAt)
	if err != nil {
		return err
	}
	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	view, err := s.orderView(c, actor, o.ID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// ListOrders handles GET /api/v1/orders?status=&limit=&offset=.
func (s *Server) ListOrders(c echo.Context) error {
	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return err
		}
		status = &st
	}
	limit, offset := page(c)

	q, err := queries.NewListOrdersQuery(mustActor(c), status, limit, offset)
	if err != nil {
		return err
	}
	orders, err := s.h.ListOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderSummariesResponse(orders))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	view, err := s.orderView(c, mustActor(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// TrackOrder handles GET /api/v1/orders/track/:code.
func (s *Server) TrackOrder(c echo.Context) error {
	q, err := queries.NewGetOrderByTrackingCodeQuery(mustActor(c), c.Param("code"))
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	action, err := order.ParseAction(req.Action)
	if err != nil {
		return err
	}

	actor := mustActor(c)
	cmd, err := commands.NewTransitionOrderCommand(actor, id, action)
	if err != nil {
		return err
	}
	if _, err = s.h.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.orderView(c, actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// AssignDriver handles PUT /api/v1/orders/:id/driver.
func (s *Server) AssignDriver(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return err
	}
	var req AssignDriverRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return err
	}

	actor := mustActor(c)
	cmd, err := commands.NewAssignDriverCommand(actor, id, driverID)
	if err != nil {
		return err
	}
	if _, err = s.h.AssignDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.orderView(c, actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// ChangeDriverStatus handles PUT /api/v1/drivers/:id/status.
func (s *Server) ChangeDriverStatus(c echo.Context) error {
	driverID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req DriverStatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := user.ParseDriverStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeDriverStatusCommand(mustActor(c), driverID, status)
	if err != nil {
		return err
	}
	driver, err := s.h.ChangeDriverStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(driver))
}
