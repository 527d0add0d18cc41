package jobs

import (
	"context"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PurgeAbandonedGuestOrdersJob removes guest drafts that were never
// reconciled and have not been touched for longer than the retention.
type PurgeAbandonedGuestOrdersJob struct {
	handler   commands.PurgeAbandonedGuestOrdersCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    logger.ILogger
}

func NewPurgeAbandonedGuestOrdersJob(
	handler commands.PurgeAbandonedGuestOrdersCommandHandler,
	retention time.Duration,
	log logger.ILogger,
) *PurgeAbandonedGuestOrdersJob {
	return &PurgeAbandonedGuestOrdersJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    log.With(logger.String("component", "purge_abandoned_guest_orders_job")),
	}
}

func (j *PurgeAbandonedGuestOrdersJob) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Purge abandoned guest orders job started (running hourly)",
		logger.String("retention", j.retention.String()),
	)
	return nil
}

// Run performs one purge.
func (j *PurgeAbandonedGuestOrdersJob) Run() {
	ctx := context.Background()
	cmd, err := commands.NewPurgeAbandonedGuestOrdersCommand(time.Now(), j.retention)
	if err != nil {
		j.logger.Error("Purge abandoned guest orders job misconfigured", logger.Error(err))
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("Purge abandoned guest orders job failed", logger.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("abandoned guest orders purged", logger.Int64("removed", removed))
	}
}

func (j *PurgeAbandonedGuestOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Purge abandoned guest orders job stopped")
}
