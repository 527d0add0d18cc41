package ports

import (
	"context"
	"time"

	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
)

// GuestOrderRepository persists quote drafts. GetForUpdate takes a row lock,
// which serializes concurrent reconciliation of the same draft.
type GuestOrderRepository interface {
	Add(ctx context.Context, aggregate *guestorder.GuestOrder) error

	Update(ctx context.Context, aggregate *guestorder.GuestOrder) error

	Get(ctx context.Context, id kernel.UUID) (*guestorder.GuestOrder, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*guestorder.GuestOrder, error)

	// DeleteAbandoned removes unreconciled drafts not touched since cutoff.
	DeleteAbandoned(ctx context.Context, cutoff time.Time) (int64, error)
}
