// Package http exposes the platform's use cases over REST and a websocket
// endpoint for live order updates.
package http

import (
	"context"
	"net/http"

	"moving/internal/adapters/out/realtime"
	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/ports"
	"moving/internal/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handlers groups every use case the API serves.
type Handlers struct {
	SendCode               commands.SendCodeCommandHandler
	VerifyCode             commands.VerifyCodeCommandHandler
	StartGuestOrder        commands.StartGuestOrderCommandHandler
	UpdateGuestOrder       commands.UpdateGuestOrderCommandHandler
	ReconcileGuestOrder    commands.ReconcileGuestOrderCommandHandler
	CreateOrder            commands.CreateOrderCommandHandler
	TransitionOrder        commands.TransitionOrderCommandHandler
	AssignDriver           commands.AssignDriverCommandHandler
	ChangeDriverStatus     commands.ChangeDriverStatusCommandHandler
	PublishDriverLocation  commands.PublishDriverLocationCommandHandler
	UpsertPricingFactor    commands.UpsertPricingFactorCommandHandler
	UpsertPackagingProduct commands.UpsertPackagingProductCommandHandler
	CreateTicket           commands.CreateTicketCommandHandler
	ReplyTicket            commands.ReplyTicketCommandHandler
	CloseTicket            commands.CloseTicketCommandHandler

	GetOrder              queries.GetOrderQueryHandler
	ListOrders            queries.ListOrdersQueryHandler
	GetGuestOrder         queries.GetGuestOrderQueryHandler
	GetQuote              queries.GetQuoteQueryHandler
	ListPricingFactors    queries.ListPricingFactorsQueryHandler
	ListPackagingProducts queries.ListPackagingProductsQueryHandler
	GetTicket             queries.GetTicketQueryHandler
	ListTickets           queries.ListTicketsQueryHandler
}

// Server adapts HTTP requests to commands and queries.
type Server struct {
	h        Handlers
	hub      *realtime.Hub
	tokens   ports.TokenIssuer
	upgrader websocket.Upgrader
	log      logger.ILogger
}

func NewServer(handlers Handlers, hub *realtime.Hub, tokens ports.TokenIssuer, log logger.ILogger) *Server {
	return &Server{
		h:      handlers,
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log.With(logger.String("component", "http")),
	}
}

// Register mounts every route on e behind the request contract check.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadContract(ctx)
	if err != nil {
		return err
	}
	validate, err := ValidateRequest(doc)
	if err != nil {
		return err
	}

	e.HTTPErrorHandler = NewErrorHandler(s.log)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", validate, Authenticate(s.tokens))
	authed := RequireActor()
	admin := RequireActor(kernel.RoleAdmin)

	api.POST("/auth/code", s.SendCode)
	api.POST("/auth/verify", s.VerifyCode)

	api.POST("/quotes", s.GetQuote)
	api.POST("/guest-orders", s.StartGuestOrder)
	api.GET("/guest-orders/:id", s.GetGuestOrder)
	api.PATCH("/guest-orders/:id", s.UpdateGuestOrder)
	api.POST("/guest-orders/:id/reconcile", s.ReconcileGuestOrder, authed)

	api.POST("/orders", s.CreateOrder, authed)
	api.GET("/orders", s.ListOrders, authed)
	api.GET("/orders/track/:code", s.TrackOrder, authed)
	api.GET("/orders/:id", s.GetOrder, authed)
	api.POST("/orders/:id/transitions", s.TransitionOrder, authed)
	api.PUT("/orders/:id/driver", s.AssignDriver, admin)

	api.PUT("/drivers/:id/status", s.ChangeDriverStatus, admin)

	api.GET("/catalog/factors", s.ListPricingFactors)
	api.POST("/catalog/factors", s.CreatePricingFactor, admin)
	api.PUT("/catalog/factors/:id", s.UpdatePricingFactor, admin)
	api.GET("/catalog/products", s.ListPackagingProducts)
	api.POST("/catalog/products", s.CreatePackagingProduct, admin)
	api.PUT("/catalog/products/:id", s.UpdatePackagingProduct, admin)

	api.POST("/tickets", s.CreateTicket, authed)
	api.GET("/tickets", s.ListTickets, authed)
	api.GET("/tickets/:id", s.GetTicket, authed)
	api.POST("/tickets/:id/replies", s.ReplyTicket, authed)
	api.POST("/tickets/:id/close", s.CloseTicket, authed)

	api.GET("/ws", s.Connect, authed)
	return nil
}
