package commands

import (
	"context"
)

type PurgeExpiredCodesCommandHandler struct {
	uowFactory OneTimeCodeUoWFactory
}

func NewPurgeExpiredCodesCommandHandler(uowFactory OneTimeCodeUoWFactory) PurgeExpiredCodesCommandHandler {
	return PurgeExpiredCodesCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of deleted codes.
func (h PurgeExpiredCodesCommandHandler) Handle(ctx context.Context, command PurgeExpiredCodesCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OneTimeCodeRepository().DeleteUnusable(ctx, command.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
