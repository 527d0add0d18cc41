package commands_test

import (
	"context"
	"testing"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/model/otp"
	"moving/internal/core/domain/model/ticket"
	"moving/internal/core/domain/model/user"
	"moving/internal/core/domain/services"
	"moving/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUoW records the transaction lifecycle. Repository getters return the
// mocks stored on the struct without expectations.
type MockUoW struct {
	mock.Mock

	orders   *MockOrderRepository
	guests   *MockGuestOrderRepository
	users    *MockUserRepository
	factors  *MockPricingFactorRepository
	products *MockPackagingProductRepository
	tickets  *MockTicketRepository
	codes    *MockOneTimeCodeRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:   new(MockOrderRepository),
		guests:   new(MockGuestOrderRepository),
		users:    new(MockUserRepository),
		factors:  new(MockPricingFactorRepository),
		products: new(MockPackagingProductRepository),
		tickets:  new(MockTicketRepository),
		codes:    new(MockOneTimeCodeRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) GuestOrderRepository() ports.GuestOrderRepository { return m.guests }
func (m *MockUoW) UserRepository() ports.UserRepository             { return m.users }
func (m *MockUoW) PricingFactorRepository() ports.PricingFactorRepository {
	return m.factors
}
func (m *MockUoW) PackagingProductRepository() ports.PackagingProductRepository {
	return m.products
}
func (m *MockUoW) TicketRepository() ports.TicketRepository           { return m.tickets }
func (m *MockUoW) OneTimeCodeRepository() ports.OneTimeCodeRepository { return m.codes }

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.guests.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.factors.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.tickets.AssertExpectations(t)
	m.codes.AssertExpectations(t)
}

// factory hands out the same MockUoW for every narrowed UoW type.
type factory struct{ uow *MockUoW }

type (
	orderFactory      factory
	guestOrderFactory factory
	authFactory       factory
	userFactory       factory
	catalogFactory    factory
	ticketFactory     factory
	codeFactory       factory
)

func (f orderFactory) Create() commands.OrderUoW           { return f.uow }
func (f guestOrderFactory) Create() commands.GuestOrderUoW { return f.uow }
func (f authFactory) Create() commands.AuthUoW             { return f.uow }
func (f userFactory) Create() commands.UserUoW             { return f.uow }
func (f catalogFactory) Create() commands.CatalogUoW       { return f.uow }
func (f ticketFactory) Create() commands.TicketUoW         { return f.uow }
func (f codeFactory) Create() commands.OneTimeCodeUoW      { return f.uow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockGuestOrderRepository struct{ mock.Mock }

func (m *MockGuestOrderRepository) Add(ctx context.Context, g *guestorder.GuestOrder) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestOrderRepository) Update(ctx context.Context, g *guestorder.GuestOrder) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestOrderRepository) Get(ctx context.Context, id kernel.UUID) (*guestorder.GuestOrder, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*guestorder.GuestOrder)
	return g, args.Error(1)
}

func (m *MockGuestOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*guestorder.GuestOrder, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*guestorder.GuestOrder)
	return g, args.Error(1)
}

func (m *MockGuestOrderRepository) DeleteAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*user.User, error) {
	args := m.Called(ctx, phone)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockPricingFactorRepository struct{ mock.Mock }

func (m *MockPricingFactorRepository) Add(ctx context.Context, f *catalog.PricingFactor) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockPricingFactorRepository) Update(ctx context.Context, f *catalog.PricingFactor) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockPricingFactorRepository) Get(ctx context.Context, id int64) (*catalog.PricingFactor, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*catalog.PricingFactor)
	return f, args.Error(1)
}

func (m *MockPricingFactorRepository) FindByIDs(ctx context.Context, ids []int64) ([]*catalog.PricingFactor, error) {
	args := m.Called(ctx, ids)
	f, _ := args.Get(0).([]*catalog.PricingFactor)
	return f, args.Error(1)
}

type MockPackagingProductRepository struct{ mock.Mock }

func (m *MockPackagingProductRepository) Add(ctx context.Context, p *catalog.PackagingProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackagingProductRepository) Update(ctx context.Context, p *catalog.PackagingProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackagingProductRepository) Get(ctx context.Context, id int64) (*catalog.PackagingProduct, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.PackagingProduct)
	return p, args.Error(1)
}

func (m *MockPackagingProductRepository) FindByIDs(
	ctx context.Context,
	ids []int64,
) ([]*catalog.PackagingProduct, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).([]*catalog.PackagingProduct)
	return p, args.Error(1)
}

func (m *MockPackagingProductRepository) FindByIDsForUpdate(
	ctx context.Context,
	ids []int64,
) ([]*catalog.PackagingProduct, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).([]*catalog.PackagingProduct)
	return p, args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Get(ctx context.Context, id int64) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*ticket.Ticket)
	return t, args.Error(1)
}

func (m *MockTicketRepository) GetForUpdate(ctx context.Context, id int64) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*ticket.Ticket)
	return t, args.Error(1)
}

type MockOneTimeCodeRepository struct{ mock.Mock }

func (m *MockOneTimeCodeRepository) Add(ctx context.Context, c *otp.OneTimeCode) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockOneTimeCodeRepository) Update(ctx context.Context, c *otp.OneTimeCode) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockOneTimeCodeRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*otp.OneTimeCode, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*otp.OneTimeCode)
	return c, args.Error(1)
}

func (m *MockOneTimeCodeRepository) DeleteUnusable(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(actor kernel.Actor) (string, time.Time, error) {
	args := m.Called(actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Parse(token string) (kernel.Actor, error) {
	args := m.Called(token)
	return args.Get(0).(kernel.Actor), args.Error(1)
}

type MockCodeGenerator struct{ mock.Mock }

func (m *MockCodeGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type MockCodeSender struct{ mock.Mock }

func (m *MockCodeSender) Send(ctx context.Context, phone kernel.Phone, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}

// bindOrderID mimics the store assigning an id on insert.
func bindOrderID(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		_ = args.Get(1).(*order.Order).BindID(id)
	}
}

func actorOf(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func testLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(35.7575, 51.4100)
	require.NoError(t, err)
	return loc
}

func testDestination(t *testing.T) order.Address {
	t.Helper()
	addr, err := order.NewAddress(order.AddressDestination, "Vanak Sq. 12", testLocation(t), 3, true)
	require.NoError(t, err)
	return addr
}

func testPhone(t *testing.T) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone("09121234567")
	require.NoError(t, err)
	return p
}

func testProduct(id int64, price kernel.Money, stock int64) *catalog.PackagingProduct {
	return catalog.RestorePackagingProduct(id, "Large box", "boxes", price, stock, true)
}

func testEngine() services.PricingEngine {
	return services.NewPricingEngine(services.Tariff{
		BaseFare:                500_000,
		PerKm:                   40_000,
		PerFloorWithoutElevator: 80_000,
		PerFloorWithElevator:    20_000,
		PerWorker:               300_000,
		PerWalkMeter:            1_000,
	})
}

// suppliesInput orders qty boxes of product 7.
func suppliesInput(t *testing.T, qty int64) services.QuoteInput {
	t.Helper()
	sel, err := kernel.NewSelection(7, qty)
	require.NoError(t, err)
	return services.QuoteInput{
		ServiceType: kernel.ServicePackingSupplies,
		Destination: testDestination(t),
		Products:    []kernel.Selection{sel},
	}
}

// pendingOrder returns a stored supplies order with id 42 owned by customerID.
func pendingOrder(t *testing.T, customerID kernel.UUID, status order.Status, driverID *kernel.UUID) *order.Order {
	t.Helper()
	return order.RestoreOrder(
		42, kernel.NewTrackingCode(), &customerID, driverID,
		kernel.ServicePackingSupplies, status,
		nil, testDestination(t), nil, nil, 0, nil, time.Now().UTC(), nil,
	)
}

func activeDriver(t *testing.T) *user.User {
	t.Helper()
	return user.RestoreUser(
		kernel.NewUUID(), testPhone(t), kernel.RoleDriver, "Reza", "Karimi", time.Now().UTC(),
		&user.Vehicle{Model: "Nissan Junior", PlateNumber: "12B345-67", WorkerCount: 2},
		user.DriverActive,
	)
}
