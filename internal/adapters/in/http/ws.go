package http

import (
	"context"
	"strconv"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Connect handles GET /api/v1/ws. Browsers cannot set headers on a websocket
// handshake, so the token may also come as ?token=.
func (s *Server) Connect(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", logger.Error(err))
		return nil
	}

	actor := mustActor(c)
	client := s.hub.Register(actor)
	s.log.Debug("websocket connected",
		logger.String("client_id", client.ID()),
		logger.String("user_id", actor.UserID.String()),
	)

	// the request context ends with the handler; the session outlives it
	s.hub.Serve(context.WithoutCancel(c.Request().Context()), conn, client, orderGate{h: s.h})
	return nil
}

// orderGate lets a client join an order's group only if it may read the
// order, and relays locations through PublishDriverLocation.
type orderGate struct {
	h Handlers
}

func (g orderGate) AuthorizeJoin(ctx context.Context, actor kernel.Actor, group string) error {
	id, err := groupOrderID(group)
	if err != nil {
		return err
	}
	q, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return err
	}
	_, err = g.h.GetOrder.Handle(ctx, q)
	return err
}

func (g orderGate) PublishLocation(ctx context.Context, actor kernel.Actor, group string, lat, lng float64) error {
	id, err := groupOrderID(group)
	if err != nil {
		return err
	}
	cmd, err := commands.NewPublishDriverLocationCommand(actor, id, lat, lng)
	if err != nil {
		return err
	}
	return g.h.PublishDriverLocation.Handle(ctx, cmd)
}

func groupOrderID(group string) (int64, error) {
	id, err := strconv.ParseInt(group, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValueIsInvalidError("group")
	}
	return id, nil
}
