package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one transaction. Repositories
// obtained after Begin share the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	GuestOrderRepository() GuestOrderRepository

	UserRepository() UserRepository

	PricingFactorRepository() PricingFactorRepository

	PackagingProductRepository() PackagingProductRepository

	TicketRepository() TicketRepository

	OneTimeCodeRepository() OneTimeCodeRepository
}
