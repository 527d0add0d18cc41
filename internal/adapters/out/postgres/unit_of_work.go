// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it after Begin run inside that transaction; before Begin (or after Commit
// or Rollback) they use the plain connection.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	...
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance must be used by a single goroutine.
package postgres

import (
	"context"

	"moving/internal/adapters/out/postgres/catalogrepo"
	"moving/internal/adapters/out/postgres/coderepo"
	"moving/internal/adapters/out/postgres/guestorderrepo"
	"moving/internal/adapters/out/postgres/orderrepo"
	"moving/internal/adapters/out/postgres/ticketrepo"
	"moving/internal/adapters/out/postgres/userrepo"
	"moving/internal/core/ports"

	"gorm.io/gorm"
)

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open,
// which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) GuestOrderRepository() ports.GuestOrderRepository {
	return guestorderrepo.NewGormGuestOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) PricingFactorRepository() ports.PricingFactorRepository {
	return catalogrepo.NewGormPricingFactorRepository(uow.conn())
}

func (uow *GormUnitOfWork) PackagingProductRepository() ports.PackagingProductRepository {
	return catalogrepo.NewGormPackagingProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(uow.conn())
}

func (uow *GormUnitOfWork) OneTimeCodeRepository() ports.OneTimeCodeRepository {
	return coderepo.NewGormOneTimeCodeRepository(uow.conn())
}
