package jobs

import (
	"fmt"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/pkg/logger"
)

// JobManager starts and stops all scheduled jobs together.
type JobManager struct {
	purgeCodesJob       *PurgeExpiredCodesJob
	purgeGuestOrdersJob *PurgeAbandonedGuestOrdersJob
}

func NewJobManager(
	purgeCodesHandler commands.PurgeExpiredCodesCommandHandler,
	purgeGuestOrdersHandler commands.PurgeAbandonedGuestOrdersCommandHandler,
	guestOrderRetention time.Duration,
	log logger.ILogger,
) *JobManager {
	return &JobManager{
		purgeCodesJob:       NewPurgeExpiredCodesJob(purgeCodesHandler, log),
		purgeGuestOrdersJob: NewPurgeAbandonedGuestOrdersJob(purgeGuestOrdersHandler, guestOrderRetention, log),
	}
}

// StartAll starts every job. If one fails to start, those already started
// are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.purgeCodesJob.Start(); err != nil {
		return fmt.Errorf("failed to start purge expired codes job: %w", err)
	}

	if err := jm.purgeGuestOrdersJob.Start(); err != nil {
		jm.purgeCodesJob.Stop()
		return fmt.Errorf("failed to start purge abandoned guest orders job: %w", err)
	}

	return nil
}

// StopAll waits for running jobs to finish.
func (jm *JobManager) StopAll() {
	jm.purgeGuestOrdersJob.Stop()
	jm.purgeCodesJob.Stop()
}
