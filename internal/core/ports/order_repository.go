package ports

import (
	"context"

	"moving/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
//
// Add binds the store-assigned id to the aggregate. GetForUpdate locks the
// order row until the surrounding transaction ends, so concurrent writers of
// the same order are serialized and always see each other's result.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id int64) (*order.Order, error)

	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)
}
