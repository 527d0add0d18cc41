package commands

import (
	"errors"
	"time"

	"moving/internal/pkg/guard"
)

var ErrPurgeExpiredCodesCommandIsNotConstructed = errors.New(
	"PurgeExpiredCodesCommand must be created via NewPurgeExpiredCodesCommand constructor",
)

// PurgeExpiredCodesCommand removes one-time codes that can no longer be used.
// It is run periodically by the cleanup job.
type PurgeExpiredCodesCommand struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewPurgeExpiredCodesCommand(now time.Time) PurgeExpiredCodesCommand {
	return PurgeExpiredCodesCommand{
		now:   now.UTC(),
		guard: guard.NewConstructorGuard(),
	}
}

func (c *PurgeExpiredCodesCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredCodesCommandIsNotConstructed)
}

func (c *PurgeExpiredCodesCommand) Now() time.Time {
	return c.now
}
