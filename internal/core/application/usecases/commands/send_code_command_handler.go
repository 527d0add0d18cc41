package commands

import (
	"context"
	"errors"
	"time"

	"moving/internal/core/domain/model/otp"
	"moving/internal/core/ports"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"
)

var ErrPhoneAlreadyRegistered = errs.NewRuleViolationError("PhoneAlreadyRegistered", "phone number is already registered")

// SendCodeResult is returned to the client; the code itself only travels
// through the CodeSender.
type SendCodeResult struct {
	RequestID string
	ExpiresAt time.Time
}

type SendCodeCommandHandler struct {
	uowFactory AuthUoWFactory
	generator  ports.CodeGenerator
	sender     ports.CodeSender
	ttl        time.Duration
	log        logger.ILogger
}

func NewSendCodeCommandHandler(
	uowFactory AuthUoWFactory,
	generator ports.CodeGenerator,
	sender ports.CodeSender,
	ttl time.Duration,
	log logger.ILogger,
) SendCodeCommandHandler {
	return SendCodeCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		sender:     sender,
		ttl:        ttl,
		log:        log.With(logger.String("component", "send_code")),
	}
}

// Handle issues a code bound to a new request id. Logging in requires an
// existing account; registering requires the phone to be unused.
func (h SendCodeCommandHandler) Handle(ctx context.Context, command SendCodeCommand) (SendCodeResult, error) {
	if err := command.Validate(); err != nil {
		return SendCodeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SendCodeResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.UserRepository().GetByPhone(ctx, command.Phone())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if command.Purpose() == otp.PurposeLogin {
			return SendCodeResult{}, err
		}
	case err != nil:
		return SendCodeResult{}, err
	case command.Purpose() == otp.PurposeRegister:
		return SendCodeResult{}, ErrPhoneAlreadyRegistered
	}

	code, err := h.generator.Generate()
	if err != nil {
		return SendCodeResult{}, err
	}

	otc, err := otp.NewOneTimeCode(command.Phone(), command.Purpose(), code, h.ttl, time.Now())
	if err != nil {
		return SendCodeResult{}, err
	}

	if err = uow.OneTimeCodeRepository().Add(ctx, otc); err != nil {
		return SendCodeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SendCodeResult{}, err
	}

	if err = h.sender.Send(ctx, command.Phone(), code); err != nil {
		return SendCodeResult{}, err
	}

	h.log.Info("code issued",
		logger.String("request_id", otc.RequestID().String()),
		logger.String("purpose", otc.Purpose().String()),
	)

	return SendCodeResult{
		RequestID: otc.RequestID().String(),
		ExpiresAt: otc.ExpiresAt(),
	}, nil
}
