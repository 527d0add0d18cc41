package commands_test

import (
	"testing"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/otp"
	"moving/internal/core/domain/model/user"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCode = "482913"

func issuedCode(t *testing.T, purpose otp.Purpose) *otp.OneTimeCode {
	t.Helper()
	code, err := otp.NewOneTimeCode(testPhone(t), purpose, testCode, 2*time.Minute, time.Now())
	require.NoError(t, err)
	return code
}

func TestNewSendCodeCommand(t *testing.T) {
	t.Run("should reject a malformed phone", func(t *testing.T) {
		_, err := commands.NewSendCodeCommand("9121234567", otp.PurposeLogin)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSendCodeCommandHandler_Handle(t *testing.T) {
	t.Run("should store a code and send it after commit", func(t *testing.T) {
		ctx := t.Context()
		phone := testPhone(t)
		cmd, err := commands.NewSendCodeCommand(phone.String(), otp.PurposeLogin)
		require.NoError(t, err)

		uow := newMockUoW()
		generator := new(MockCodeGenerator)
		sender := new(MockCodeSender)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.users.On("GetByPhone", ctx, phone).Return(&user.User{}, nil).Once(),
			generator.On("Generate").Return(testCode, nil).Once(),
			uow.codes.On("Add", ctx, mock.AnythingOfType("*otp.OneTimeCode")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			sender.On("Send", ctx, phone, testCode).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewSendCodeCommandHandler(authFactory{uow}, generator, sender, 2*time.Minute, logger.NewNop())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		_, parseErr := kernel.UUIDFromString(result.RequestID)
		require.NoError(t, parseErr)
		assert.True(t, result.ExpiresAt.After(time.Now()))
		uow.assertAll(t)
		generator.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("should refuse to register a known phone", func(t *testing.T) {
		ctx := t.Context()
		phone := testPhone(t)
		cmd, err := commands.NewSendCodeCommand(phone.String(), otp.PurposeRegister)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.users.On("GetByPhone", ctx, phone).Return(&user.User{}, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		sender := new(MockCodeSender)

		h := commands.NewSendCodeCommandHandler(authFactory{uow}, new(MockCodeGenerator), sender, time.Minute, logger.NewNop())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrPhoneAlreadyRegistered)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		uow.assertAll(t)
	})

	t.Run("should refuse to log in an unknown phone", func(t *testing.T) {
		ctx := t.Context()
		phone := testPhone(t)
		cmd, err := commands.NewSendCodeCommand(phone.String(), otp.PurposeLogin)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.users.On("GetByPhone", ctx, phone).Return(nil, errs.NewObjectNotFoundError("phone", phone)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewSendCodeCommandHandler(authFactory{uow}, new(MockCodeGenerator), new(MockCodeSender), time.Minute, logger.NewNop())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.assertAll(t)
	})
}

func TestVerifyCodeCommandHandler_Handle(t *testing.T) {
	t.Run("should log in an existing user", func(t *testing.T) {
		ctx := t.Context()
		code := issuedCode(t, otp.PurposeLogin)
		existing := activeDriver(t)
		cmd, err := commands.NewVerifyCodeCommand(code.RequestID().String(), testPhone(t).String(), testCode, nil, nil)
		require.NoError(t, err)

		expiresAt := time.Now().Add(time.Hour)
		uow := newMockUoW()
		tokens := new(MockTokenIssuer)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.codes.On("GetForUpdate", ctx, code.RequestID()).Return(code, nil).Once(),
			uow.codes.On("Update", ctx, code).Return(nil).Once(),
			uow.users.On("GetByPhone", ctx, testPhone(t)).Return(existing, nil).Once(),
			tokens.On("Issue", existing.Actor()).Return("signed", expiresAt, nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewVerifyCodeCommandHandler(authFactory{uow}, testEngine(), tokens, logger.NewNop())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "signed", result.Token)
		assert.False(t, result.Registered)
		assert.Same(t, existing, result.User)
		assert.Nil(t, result.Order)
		assert.True(t, code.IsConsumed())
		uow.assertAll(t)
		tokens.AssertExpectations(t)
	})

	t.Run("should commit the failed attempt on a wrong code", func(t *testing.T) {
		ctx := t.Context()
		code := issuedCode(t, otp.PurposeLogin)
		cmd, err := commands.NewVerifyCodeCommand(code.RequestID().String(), testPhone(t).String(), "000000", nil, nil)
		require.NoError(t, err)

		uow := newMockUoW()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.codes.On("GetForUpdate", ctx, code.RequestID()).Return(code, nil).Once(),
			uow.codes.On("Update", ctx, code).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewVerifyCodeCommandHandler(authFactory{uow}, testEngine(), new(MockTokenIssuer), logger.NewNop())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, otp.ErrInvalidOrExpiredCode)
		assert.Equal(t, 1, code.Attempts())
		assert.False(t, code.IsConsumed())
		uow.assertAll(t)
	})

	t.Run("should treat an unknown request id as an invalid code", func(t *testing.T) {
		ctx := t.Context()
		requestID := kernel.NewUUID()
		cmd, err := commands.NewVerifyCodeCommand(requestID.String(), testPhone(t).String(), testCode, nil, nil)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.codes.On("GetForUpdate", ctx, requestID).
			Return(nil, errs.NewObjectNotFoundError("request_id", requestID)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewVerifyCodeCommandHandler(authFactory{uow}, testEngine(), new(MockTokenIssuer), logger.NewNop())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, otp.ErrInvalidOrExpiredCode)
		uow.assertAll(t)
	})

	t.Run("should register a driver and convert the guest draft", func(t *testing.T) {
		ctx := t.Context()
		code := issuedCode(t, otp.PurposeRegister)
		draft := readyDraft(t, 1)
		draftID := draft.ID()
		reg := &commands.Registration{
			FirstName: "Reza",
			Role:      kernel.RoleDriver,
			Vehicle:   &user.Vehicle{Model: "Nissan Junior", PlateNumber: "12B345-67", WorkerCount: 2},
		}
		cmd, err := commands.NewVerifyCodeCommand(code.RequestID().String(), testPhone(t).String(), testCode, reg, &draftID)
		require.NoError(t, err)

		uow := newMockUoW()
		tokens := new(MockTokenIssuer)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.codes.On("GetForUpdate", ctx, code.RequestID()).Return(code, nil).Once(),
			uow.codes.On("Update", ctx, code).Return(nil).Once(),
			uow.users.On("GetByPhone", ctx, testPhone(t)).
				Return(nil, errs.NewObjectNotFoundError("phone", testPhone(t))).Once(),
			uow.users.On("Add", ctx, mock.AnythingOfType("*user.User")).Return(nil).Once(),
			tokens.On("Issue", mock.AnythingOfType("kernel.Actor")).Return("signed", time.Now().Add(time.Hour), nil).Once(),
			uow.guests.On("GetForUpdate", ctx, draftID).Return(draft, nil).Once(),
			uow.products.On("FindByIDsForUpdate", ctx, []int64{7}).
				Return([]*catalog.PackagingProduct{testProduct(7, 150_000, 10)}, nil).Once(),
			uow.products.On("Update", ctx, mock.Anything).Return(nil).Once(),
			uow.orders.On("Add", ctx, mock.Anything).Run(bindOrderID(90)).Return(nil).Once(),
			uow.guests.On("Update", ctx, draft).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewVerifyCodeCommandHandler(authFactory{uow}, testEngine(), tokens, logger.NewNop())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Registered)
		assert.Equal(t, kernel.RoleDriver, result.User.Role())
		assert.Equal(t, user.DriverPendingApproval, result.User.Driver().Status())
		require.NotNil(t, result.Order)
		assert.Equal(t, int64(90), result.Order.ID())
		assert.True(t, draft.IsReconciled())
		assert.NoError(t, result.LinkError)
		uow.assertAll(t)
	})

	t.Run("should authenticate even when the draft is unknown", func(t *testing.T) {
		ctx := t.Context()
		code := issuedCode(t, otp.PurposeLogin)
		existing := activeDriver(t)
		draftID := kernel.NewUUID()
		cmd, err := commands.NewVerifyCodeCommand(code.RequestID().String(), testPhone(t).String(), testCode, nil, &draftID)
		require.NoError(t, err)

		uow := newMockUoW()
		tokens := new(MockTokenIssuer)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.codes.On("GetForUpdate", ctx, code.RequestID()).Return(code, nil).Once()
		uow.codes.On("Update", ctx, code).Return(nil).Once()
		uow.users.On("GetByPhone", ctx, testPhone(t)).Return(existing, nil).Once()
		tokens.On("Issue", existing.Actor()).Return("signed", time.Now().Add(time.Hour), nil).Once()
		uow.guests.On("GetForUpdate", ctx, draftID).
			Return(nil, errs.NewObjectNotFoundError("guest_order", draftID)).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewVerifyCodeCommandHandler(authFactory{uow}, testEngine(), tokens, logger.NewNop())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "signed", result.Token)
		assert.Nil(t, result.Order)
		assert.ErrorIs(t, result.LinkError, errs.ErrObjectNotFound)
		uow.assertAll(t)
	})

	t.Run("should not let admins self-register", func(t *testing.T) {
		_, err := commands.NewVerifyCodeCommand(
			kernel.NewUUID().String(), testPhone(t).String(), testCode,
			&commands.Registration{FirstName: "Root", Role: kernel.RoleAdmin}, nil,
		)
		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}
