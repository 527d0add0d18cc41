package cmd

import (
	"errors"

	httpin "moving/internal/adapters/in/http"
	"moving/internal/adapters/out/events"
	"moving/internal/adapters/out/kafka"
	"moving/internal/adapters/out/postgres"
	"moving/internal/adapters/out/realtime"
	"moving/internal/adapters/out/sms"
	"moving/internal/adapters/out/token"
	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/services"
	"moving/internal/core/ports"
	"moving/internal/jobs"
	"moving/internal/pkg/logger"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	log        logger.ILogger

	engine    services.PricingEngine
	hub       *realtime.Hub
	notifier  ports.Notifier
	tokens    ports.TokenIssuer
	generator ports.CodeGenerator
	sender    ports.CodeSender

	closers []func() error
}

// Option replaces an outbound adapter, mostly for tests.
type Option func(*CompositionRoot)

func WithCodeSender(sender ports.CodeSender) Option {
	return func(c *CompositionRoot) { c.sender = sender }
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, log logger.ILogger, opts ...Option) (*CompositionRoot, error) {
	tokens, err := token.NewJWTIssuer(config.JWTSecret, config.JWTTTL)
	if err != nil {
		return nil, err
	}
	generator, err := sms.NewDigitGenerator(config.OTPLength)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		log:        log,
		engine:     services.NewPricingEngine(config.Tariff),
		hub:        realtime.NewHub(realtime.NewInMemoryRegistry(), config.WSOutboxSize, log),
		tokens:     tokens,
		generator:  generator,
		sender:     sms.NewLogSender(log),
	}

	targets := []ports.Notifier{c.hub}
	if len(config.KafkaBrokers) > 0 {
		producer, err := kafka.NewAsyncProducer(config.KafkaBrokers, config.KafkaSendTimeout)
		if err != nil {
			return nil, err
		}
		p := kafka.NewProducer(producer, config.KafkaOrderChangedTopic, log)
		c.closers = append(c.closers, p.Close)
		targets = append(targets, p)
	}
	c.notifier = events.NewNotifier(targets...)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *CompositionRoot) Close() error {
	var err error
	for _, closeFn := range c.closers {
		err = errors.Join(err, closeFn())
	}
	return err
}

func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) Tokens() ports.TokenIssuer {
	return c.tokens
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) guestOrderUoW() commands.GuestOrderUoWFactory {
	return FuncGuestOrderUoWFactory(func() commands.GuestOrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) authUoW() commands.AuthUoWFactory {
	return FuncAuthUoWFactory(func() commands.AuthUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoW() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ticketUoW() commands.TicketUoWFactory {
	return FuncTicketUoWFactory(func() commands.TicketUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) oneTimeCodeUoW() commands.OneTimeCodeUoWFactory {
	return FuncOneTimeCodeUoWFactory(func() commands.OneTimeCodeUoW { return c.uowFactory.Create() })
}

// Commands

func (c *CompositionRoot) CreateSendCodeCommandHandler() commands.SendCodeCommandHandler {
	return commands.NewSendCodeCommandHandler(c.authUoW(), c.generator, c.sender, c.config.OTPTTL, c.log)
}

func (c *CompositionRoot) CreateVerifyCodeCommandHandler() commands.VerifyCodeCommandHandler {
	return commands.NewVerifyCodeCommandHandler(c.authUoW(), c.engine, c.tokens, c.log)
}

func (c *CompositionRoot) CreateStartGuestOrderCommandHandler() commands.StartGuestOrderCommandHandler {
	return commands.NewStartGuestOrderCommandHandler(c.guestOrderUoW())
}

func (c *CompositionRoot) CreateUpdateGuestOrderCommandHandler() commands.UpdateGuestOrderCommandHandler {
	return commands.NewUpdateGuestOrderCommandHandler(c.guestOrderUoW(), c.engine)
}

func (c *CompositionRoot) CreateReconcileGuestOrderCommandHandler() commands.ReconcileGuestOrderCommandHandler {
	return commands.NewReconcileGuestOrderCommandHandler(c.authUoW(), c.engine)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoW(), c.engine)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoW(), c.notifier, c.log)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoW(), c.notifier, c.log)
}

func (c *CompositionRoot) CreateChangeDriverStatusCommandHandler() commands.ChangeDriverStatusCommandHandler {
	return commands.NewChangeDriverStatusCommandHandler(c.userUoW(), c.notifier, c.log)
}

func (c *CompositionRoot) CreatePublishDriverLocationCommandHandler() commands.PublishDriverLocationCommandHandler {
	return commands.NewPublishDriverLocationCommandHandler(c.orderUoW(), c.notifier, c.log)
}

func (c *CompositionRoot) CreateUpsertPricingFactorCommandHandler() commands.UpsertPricingFactorCommandHandler {
	return commands.NewUpsertPricingFactorCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateUpsertPackagingProductCommandHandler() commands.UpsertPackagingProductCommandHandler {
	return commands.NewUpsertPackagingProductCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateCreateTicketCommandHandler() commands.CreateTicketCommandHandler {
	return commands.NewCreateTicketCommandHandler(c.ticketUoW())
}

func (c *CompositionRoot) CreateReplyTicketCommandHandler() commands.ReplyTicketCommandHandler {
	return commands.NewReplyTicketCommandHandler(c.ticketUoW(), c.notifier, c.log)
}

func (c *CompositionRoot) CreateCloseTicketCommandHandler() commands.CloseTicketCommandHandler {
	return commands.NewCloseTicketCommandHandler(c.ticketUoW())
}

func (c *CompositionRoot) CreatePurgeExpiredCodesCommandHandler() commands.PurgeExpiredCodesCommandHandler {
	return commands.NewPurgeExpiredCodesCommandHandler(c.oneTimeCodeUoW())
}

func (c *CompositionRoot) CreatePurgeAbandonedGuestOrdersCommandHandler() commands.PurgeAbandonedGuestOrdersCommandHandler {
	return commands.NewPurgeAbandonedGuestOrdersCommandHandler(c.guestOrderUoW())
}

func (c *CompositionRoot) CreateEnsureAdminsCommandHandler() commands.EnsureAdminsCommandHandler {
	return commands.NewEnsureAdminsCommandHandler(c.userUoW(), c.log)
}

// Queries

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetGuestOrderQueryHandler() queries.GetGuestOrderQueryHandler {
	return queries.NewGetGuestOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetQuoteQueryHandler() queries.GetQuoteQueryHandler {
	return queries.NewGetQuoteQueryHandler(postgres.NewCatalogReader(c.gormDB), c.engine)
}

func (c *CompositionRoot) CreateListPricingFactorsQueryHandler() queries.ListPricingFactorsQueryHandler {
	return queries.NewListPricingFactorsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPackagingProductsQueryHandler() queries.ListPackagingProductsQueryHandler {
	return queries.NewListPackagingProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTicketQueryHandler() queries.GetTicketQueryHandler {
	return queries.NewGetTicketQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTicketsQueryHandler() queries.ListTicketsQueryHandler {
	return queries.NewListTicketsQueryHandler(c.gormDB)
}

// Adapters

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		SendCode:               c.CreateSendCodeCommandHandler(),
		VerifyCode:             c.CreateVerifyCodeCommandHandler(),
		StartGuestOrder:        c.CreateStartGuestOrderCommandHandler(),
		UpdateGuestOrder:       c.CreateUpdateGuestOrderCommandHandler(),
		ReconcileGuestOrder:    c.CreateReconcileGuestOrderCommandHandler(),
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		TransitionOrder:        c.CreateTransitionOrderCommandHandler(),
		AssignDriver:           c.CreateAssignDriverCommandHandler(),
		ChangeDriverStatus:     c.CreateChangeDriverStatusCommandHandler(),
		PublishDriverLocation:  c.CreatePublishDriverLocationCommandHandler(),
		UpsertPricingFactor:    c.CreateUpsertPricingFactorCommandHandler(),
		UpsertPackagingProduct: c.CreateUpsertPackagingProductCommandHandler(),
		CreateTicket:           c.CreateCreateTicketCommandHandler(),
		ReplyTicket:            c.CreateReplyTicketCommandHandler(),
		CloseTicket:            c.CreateCloseTicketCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetGuestOrder:         c.CreateGetGuestOrderQueryHandler(),
		GetQuote:              c.CreateGetQuoteQueryHandler(),
		ListPricingFactors:    c.CreateListPricingFactorsQueryHandler(),
		ListPackagingProducts: c.CreateListPackagingProductsQueryHandler(),
		GetTicket:             c.CreateGetTicketQueryHandler(),
		ListTickets:           c.CreateListTicketsQueryHandler(),
	}, c.hub, c.tokens, c.log)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeExpiredCodesCommandHandler(),
		c.CreatePurgeAbandonedGuestOrdersCommandHandler(),
		c.config.GuestOrderRetention,
		c.log,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncGuestOrderUoWFactory func() commands.GuestOrderUoW

func (f FuncGuestOrderUoWFactory) Create() commands.GuestOrderUoW {
	return f()
}

type FuncAuthUoWFactory func() commands.AuthUoW

func (f FuncAuthUoWFactory) Create() commands.AuthUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncTicketUoWFactory func() commands.TicketUoW

func (f FuncTicketUoWFactory) Create() commands.TicketUoW {
	return f()
}

type FuncOneTimeCodeUoWFactory func() commands.OneTimeCodeUoW

func (f FuncOneTimeCodeUoWFactory) Create() commands.OneTimeCodeUoW {
	return f()
}
