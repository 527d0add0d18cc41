// Package commands contains business operations that modify system state.
// Every handler validates its command, runs inside one unit of work and
// commits before any notification is published.
package commands

import (
	"context"

	"moving/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	GuestOrderRepoFactory interface {
		GuestOrderRepository() ports.GuestOrderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	CatalogRepoFactory interface {
		PricingFactorRepository() ports.PricingFactorRepository
		PackagingProductRepository() ports.PackagingProductRepository
	}

	TicketRepoFactory interface {
		TicketRepository() ports.TicketRepository
	}

	OneTimeCodeRepoFactory interface {
		OneTimeCodeRepository() ports.OneTimeCodeRepository
	}

	// OrderUoW serves order creation, transitions and driver assignment.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
		CatalogRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// GuestOrderUoW serves the anonymous quote steps and draft cleanup.
	GuestOrderUoW interface {
		TxManager
		GuestOrderRepoFactory
		CatalogRepoFactory
	}

	GuestOrderUoWFactory interface {
		Create() GuestOrderUoW
	}

	// AuthUoW spans everything touched while verifying a code: the code itself,
	// the user, and the guest draft converted into an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   code, err := uow.OneTimeCodeRepository().GetForUpdate(ctx, requestID)
	//   // ... verify, resolve user, reconcile draft
	//
	//   err = uow.Commit(ctx)
	AuthUoW interface {
		TxManager
		OneTimeCodeRepoFactory
		UserRepoFactory
		GuestOrderRepoFactory
		OrderRepoFactory
		CatalogRepoFactory
	}

	AuthUoWFactory interface {
		Create() AuthUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	TicketUoW interface {
		TxManager
		TicketRepoFactory
		OrderRepoFactory
	}

	TicketUoWFactory interface {
		Create() TicketUoW
	}

	OneTimeCodeUoW interface {
		TxManager
		OneTimeCodeRepoFactory
	}

	OneTimeCodeUoWFactory interface {
		Create() OneTimeCodeUoW
	}
)
