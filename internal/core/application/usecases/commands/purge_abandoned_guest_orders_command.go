package commands

import (
	"errors"
	"fmt"
	"time"

	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var ErrPurgeAbandonedGuestOrdersCommandIsNotConstructed = errors.New(
	"PurgeAbandonedGuestOrdersCommand must be created via NewPurgeAbandonedGuestOrdersCommand constructor",
)

// PurgeAbandonedGuestOrdersCommand deletes unreconciled drafts that were not
// touched within the retention window.
type PurgeAbandonedGuestOrdersCommand struct {
	cutoff time.Time
	guard  guard.ConstructorGuard
}

func NewPurgeAbandonedGuestOrdersCommand(now time.Time, retention time.Duration) (PurgeAbandonedGuestOrdersCommand, error) {
	if retention <= 0 {
		return PurgeAbandonedGuestOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is not positive", retention),
		)
	}

	return PurgeAbandonedGuestOrdersCommand{
		cutoff: now.UTC().Add(-retention),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *PurgeAbandonedGuestOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeAbandonedGuestOrdersCommandIsNotConstructed)
}

func (c *PurgeAbandonedGuestOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}
