package commands

import (
	"context"

	"moving/internal/core/domain/model/catalog"
)

type UpsertPackagingProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpsertPackagingProductCommandHandler(uowFactory CatalogUoWFactory) UpsertPackagingProductCommandHandler {
	return UpsertPackagingProductCommandHandler{uowFactory: uowFactory}
}

func (h UpsertPackagingProductCommandHandler) Handle(
	ctx context.Context,
	command UpsertPackagingProductCommand,
) (*catalog.PackagingProduct, error) {
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

	repo := uow.PackagingProductRepository()

	var product *catalog.PackagingProduct
	if command.ID() == nil {
		created, err := catalog.NewPackagingProduct(command.Name(), command.Category(), command.Price(), command.Stock())
		if err != nil {
			return nil, err
		}
		created.SetActive(command.Active())
		if err = repo.Add(ctx, created); err != nil {
			return nil, err
		}
		product = created
	} else {
		existing, err := repo.Get(ctx, *command.ID())
		if err != nil {
			return nil, err
		}
		if err = existing.Update(command.Name(), command.Category(), command.Price(), command.Stock()); err != nil {
			return nil, err
		}
		existing.SetActive(command.Active())
		if err = repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		product = existing
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return product, nil
}
