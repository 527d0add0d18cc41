package commands_test

import (
	"errors"
	"testing"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/model/user"
	"moving/internal/core/domain/services"
	"moving/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := actorOf(t, kernel.RoleCustomer)
	cmd, err := commands.NewCreateOrderCommand(customer, nil, suppliesInput(t, 2), nil)
	require.NoError(t, err)

	box := testProduct(7, 150_000, 10)
	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.users.On("Get", ctx, customer.UserID).Return(&user.User{}, nil).Once(),
		uow.products.On("FindByIDsForUpdate", ctx, []int64{7}).
			Return([]*catalog.PackagingProduct{box}, nil).Once(),
		uow.products.On("Update", ctx, box).Return(nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(bindOrderID(42)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID())
	assert.Equal(t, order.PendingPayment, o.Status())
	assert.Equal(t, kernel.Money(300_000), o.FinalPrice())
	assert.Equal(t, int64(8), box.Stock())
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_AdminSkipsPayment(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actorOf(t, kernel.RoleAdmin), &customerID, suppliesInput(t, 1), nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, customerID).Return(&user.User{}, nil).Once()
	uow.products.On("FindByIDsForUpdate", ctx, []int64{7}).
		Return([]*catalog.PackagingProduct{testProduct(7, 150_000, 10)}, nil).Once()
	uow.products.On("Update", ctx, mock.Anything).Return(nil).Once()
	uow.orders.On("Add", ctx, mock.Anything).Run(bindOrderID(43)).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PendingAdminApproval, o.Status())
	assert.True(t, o.CustomerID().IsEqual(customerID))
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_OutOfStockWritesNothing(t *testing.T) {
	ctx := t.Context()
	customer := actorOf(t, kernel.RoleCustomer)
	cmd, err := commands.NewCreateOrderCommand(customer, nil, suppliesInput(t, 5), nil)
	require.NoError(t, err)

	box := testProduct(7, 150_000, 3)
	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.users.On("Get", ctx, customer.UserID).Return(&user.User{}, nil).Once(),
		uow.products.On("FindByIDsForUpdate", ctx, []int64{7}).
			Return([]*catalog.PackagingProduct{box}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrOutOfStock)
	assert.Equal(t, int64(3), box.Stock())
	uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	customer := actorOf(t, kernel.RoleCustomer)
	cmd, err := commands.NewCreateOrderCommand(customer, nil, suppliesInput(t, 1), nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, customer.UserID).Return(&user.User{}, nil).Once()
	uow.products.On("FindByIDsForUpdate", ctx, []int64{7}).Return(nil, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrUnknownProduct)
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actorOf(t, kernel.RoleAdmin), &customerID, suppliesInput(t, 1), nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, customerID).Return(nil, errs.NewObjectNotFoundError("user", customerID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(orderFactory{newMockUoW()}, testEngine())

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(actorOf(t, kernel.RoleCustomer), nil, suppliesInput(t, 1), nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	customer := actorOf(t, kernel.RoleCustomer)
	cmd, err := commands.NewCreateOrderCommand(customer, nil, suppliesInput(t, 1), nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, customer.UserID).Return(&user.User{}, nil).Once()
	uow.products.On("FindByIDsForUpdate", ctx, []int64{7}).
		Return([]*catalog.PackagingProduct{testProduct(7, 150_000, 10)}, nil).Once()
	uow.products.On("Update", ctx, mock.Anything).Return(nil).Once()
	uow.orders.On("Add", ctx, mock.Anything).Run(bindOrderID(44)).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(orderFactory{uow}, testEngine())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.assertAll(t)
}
