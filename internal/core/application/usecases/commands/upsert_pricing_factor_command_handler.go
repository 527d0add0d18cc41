package commands

import (
	"context"

	"moving/internal/core/domain/model/catalog"
)

type UpsertPricingFactorCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpsertPricingFactorCommandHandler(uowFactory CatalogUoWFactory) UpsertPricingFactorCommandHandler {
	return UpsertPricingFactorCommandHandler{uowFactory: uowFactory}
}

func (h UpsertPricingFactorCommandHandler) Handle(
	ctx context.Context,
	command UpsertPricingFactorCommand,
) (*catalog.PricingFactor, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PricingFactorRepository()

	var factor *catalog.PricingFactor
	if command.ID() == nil {
		created, err := catalog.NewPricingFactor(
			command.Name(), command.Category(), command.ServiceType(), command.Price(), command.Unit(),
		)
		if err != nil {
			return nil, err
		}
		created.SetActive(command.Active())
		if err = repo.Add(ctx, created); err != nil {
			return nil, err
		}
		factor = created
	} else {
		existing, err := repo.Get(ctx, *command.ID())
		if err != nil {
			return nil, err
		}
		if err = existing.Update(
			command.Name(), command.Category(), command.ServiceType(), command.Price(), command.Unit(),
		); err != nil {
			return nil, err
		}
		existing.SetActive(command.Active())
		if err = repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		factor = existing
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return factor, nil
}
