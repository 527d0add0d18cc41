package commands

import (
	"context"
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"
)

type EnsureAdminsCommandHandler struct {
	uowFactory UserUoWFactory
	log        logger.ILogger
}

func NewEnsureAdminsCommandHandler(uowFactory UserUoWFactory, log logger.ILogger) EnsureAdminsCommandHandler {
	return EnsureAdminsCommandHandler{
		uowFactory: uowFactory,
		log:        log.With(logger.String("component", "ensure_admins")),
	}
}

// Handle creates missing admins. Phones that already belong to a non-admin
// user are left alone and reported in the log.
func (h EnsureAdminsCommandHandler) Handle(ctx context.Context, command EnsureAdminsCommand) (int, error) {
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

	repo := uow.UserRepository()
	created := 0
	for _, phone := range command.Phones() {
		existing, err := repo.GetByPhone(ctx, phone)
		switch {
		case err == nil:
			if existing.Role() != kernel.RoleAdmin {
				h.log.Warning("admin phone belongs to another role",
					logger.String("phone", phone.String()),
					logger.String("role", existing.Role().String()),
				)
			}
			continue
		case !errors.Is(err, errs.ErrObjectNotFound):
			return 0, err
		}

		admin, err := user.NewUser(phone, kernel.RoleAdmin, "Admin", "", nil)
		if err != nil {
			return 0, err
		}
		if err = repo.Add(ctx, admin); err != nil {
			return 0, err
		}
		created++
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if created > 0 {
		h.log.Info("admins seeded", logger.Int("count", created))
	}
	return created, nil
}
