package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "moving/internal/adapters/out/postgres"
	"moving/internal/adapters/out/postgres/pgtest"
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/model/user"
	"moving/internal/core/ports"
	"moving/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Models()...)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(
		"orders", "order_addresses", "order_items", "users", "packaging_products",
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.GuestOrderRepository())
	suite.NotNil(uow1.UserRepository())
	suite.NotNil(uow1.PricingFactorRepository())
	suite.NotNil(uow1.PackagingProductRepository())
	suite.NotNil(uow1.TicketRepository())
	suite.NotNil(uow1.OneTimeCodeRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitSpansRepositories() {
	ctx := context.Background()
	customer := suite.newCustomer()
	product := suite.newProduct(10)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))
	suite.Require().NoError(uow.PackagingProductRepository().Add(ctx, product))
	o := suite.newSuppliesOrder(customer.ID(), product, 4)
	suite.Require().NoError(product.Reserve(4))
	suite.Require().NoError(uow.PackagingProductRepository().Update(ctx, product))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	gotOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(kernel.Money(600000), gotOrder.FinalPrice())

	gotProduct, err := reader.PackagingProductRepository().Get(ctx, product.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(6), gotProduct.Stock())

	_, err = reader.UserRepository().Get(ctx, customer.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAll() {
	ctx := context.Background()
	customer := suite.newCustomer()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))

	_, err := uow.UserRepository().Get(ctx, customer.ID())
	suite.Require().NoError(err, "visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().UserRepository().Get(ctx, customer.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_IsolationBetweenInstances() {
	ctx := context.Background()
	customer := suite.newCustomer()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() { _ = writer.Rollback(ctx) }()
	suite.Require().NoError(writer.UserRepository().Add(ctx, customer))

	_, err := suite.factory.Create().UserRepository().Get(ctx, customer.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "uncommitted rows are invisible to others")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	customer := suite.newCustomer()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))

	_, err := suite.factory.Create().UserRepository().Get(ctx, customer.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newCustomer() *user.User {
	phone, err := kernel.NewPhone("09121234567")
	suite.Require().NoError(err)
	u, err := user.NewUser(phone, kernel.RoleCustomer, "Sara", "Ahmadi", nil)
	suite.Require().NoError(err)
	return u
}

func (suite *UnitOfWorkIntegrationTestSuite) newProduct(stock int64) *catalog.PackagingProduct {
	p, err := catalog.NewPackagingProduct("Large box", "boxes", kernel.Money(150000), stock)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) newSuppliesOrder(
	customerID kernel.UUID,
	product *catalog.PackagingProduct,
	qty int64,
) *order.Order {
	loc, err := kernel.NewLocation(35.7580, 51.4100)
	suite.Require().NoError(err)
	destination, err := order.NewAddress(order.AddressDestination, "Vanak Sq.", loc, 3, true)
	suite.Require().NoError(err)

	o, err := order.NewOrder(customerID, kernel.ServicePackingSupplies, nil, destination, nil)
	suite.Require().NoError(err)

	item, err := order.NewItem(product.ID(), product.Name(), qty, product.Price())
	suite.Require().NoError(err)
	suite.Require().NoError(o.Price([]order.Item{item}, nil))
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
