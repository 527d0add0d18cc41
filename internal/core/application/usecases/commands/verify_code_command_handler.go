package commands

import (
	"context"
	"errors"
	"time"

	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/model/otp"
	"moving/internal/core/domain/model/user"
	"moving/internal/core/domain/services"
	"moving/internal/core/ports"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"
)

// VerifyCodeResult describes a successful authentication.
// Order is nil when no guest order was given or it could not be linked;
// LinkError then says why.
type VerifyCodeResult struct {
	Token      string
	ExpiresAt  time.Time
	User       *user.User
	Registered bool
	Order      *order.Order
	LinkError  error
}

type VerifyCodeCommandHandler struct {
	uowFactory AuthUoWFactory
	engine     services.PricingEngine
	tokens     ports.TokenIssuer
	log        logger.ILogger
}

func NewVerifyCodeCommandHandler(
	uowFactory AuthUoWFactory,
	engine services.PricingEngine,
	tokens ports.TokenIssuer,
	log logger.ILogger,
) VerifyCodeCommandHandler {
	return VerifyCodeCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		tokens:     tokens,
		log:        log.With(logger.String("component", "verify_code")),
	}
}

// Handle verifies the code, resolves or registers the user and, when a guest
// order id is supplied, converts the draft, all in one transaction.
//
// A wrong code still commits the incremented attempt counter before
// ErrInvalidOrExpiredCode is returned. A draft that is unknown, already
// reconciled or cannot be priced does not fail authentication: the result
// simply carries no order.
func (h VerifyCodeCommandHandler) Handle(ctx context.Context, command VerifyCodeCommand) (VerifyCodeResult, error) {
	if err := command.Validate(); err != nil {
		return VerifyCodeResult{}, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return VerifyCodeResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	codes := uow.OneTimeCodeRepository()
	code, err := codes.GetForUpdate(ctx, command.RequestID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return VerifyCodeResult{}, otp.ErrInvalidOrExpiredCode.WithCause(err)
	}
	if err != nil {
		return VerifyCodeResult{}, err
	}

	if verifyErr := code.Verify(command.Code(), command.Phone(), now); verifyErr != nil {
		if err = codes.Update(ctx, code); err != nil {
			return VerifyCodeResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return VerifyCodeResult{}, err
		}
		return VerifyCodeResult{}, verifyErr
	}
	if err = codes.Update(ctx, code); err != nil {
		return VerifyCodeResult{}, err
	}

	u, registered, err := h.resolveUser(ctx, uow, command, code.Purpose())
	if err != nil {
		return VerifyCodeResult{}, err
	}

	token, expiresAt, err := h.tokens.Issue(u.Actor())
	if err != nil {
		return VerifyCodeResult{}, err
	}

	result := VerifyCodeResult{
		Token:      token,
		ExpiresAt:  expiresAt,
		User:       u,
		Registered: registered,
	}

	if guestOrderID := command.GuestOrderID(); guestOrderID != nil {
		o, linkErr := reconcileGuestOrder(ctx, uow, h.engine, u.ID(), *guestOrderID, now)
		switch {
		case linkErr == nil:
			result.Order = o
		case isDomainError(linkErr):
			h.log.Info("guest order not linked",
				logger.String("guest_order_id", guestOrderID.String()),
				logger.Error(linkErr),
			)
			result.LinkError = linkErr
		default:
			return VerifyCodeResult{}, linkErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return VerifyCodeResult{}, err
	}

	return result, nil
}

func (h VerifyCodeCommandHandler) resolveUser(
	ctx context.Context,
	uow AuthUoW,
	command VerifyCodeCommand,
	purpose otp.Purpose,
) (*user.User, bool, error) {
	users := uow.UserRepository()

	existing, err := users.GetByPhone(ctx, command.Phone())
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) || purpose != otp.PurposeRegister {
		return nil, false, err
	}

	reg := command.Registration()
	if reg == nil {
		return nil, false, errs.NewValueIsRequiredError("registration")
	}

	created, err := user.NewUser(command.Phone(), reg.Role, reg.FirstName, reg.LastName, reg.Vehicle)
	if err != nil {
		return nil, false, err
	}
	if err = users.Add(ctx, created); err != nil {
		return nil, false, err
	}
	return created, true, nil
}
