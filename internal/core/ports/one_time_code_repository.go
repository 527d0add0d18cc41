package ports

import (
	"context"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/otp"
)

type OneTimeCodeRepository interface {
	Add(ctx context.Context, aggregate *otp.OneTimeCode) error

	Update(ctx context.Context, aggregate *otp.OneTimeCode) error

	GetForUpdate(ctx context.Context, requestID kernel.UUID) (*otp.OneTimeCode, error)

	// DeleteUnusable removes codes that expired before now or were consumed.
	DeleteUnusable(ctx context.Context, now time.Time) (int64, error)
}
