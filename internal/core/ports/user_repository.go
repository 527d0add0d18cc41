package ports

import (
	"context"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
)

type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	Update(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	GetByPhone(ctx context.Context, phone kernel.Phone) (*user.User, error)
}
