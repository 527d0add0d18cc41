package jobs

import (
	"context"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PurgeExpiredCodesJob removes unusable one-time codes every minute.
type PurgeExpiredCodesJob struct {
	handler commands.PurgeExpiredCodesCommandHandler
	cron    *cron.Cron
	logger  logger.ILogger
}

func NewPurgeExpiredCodesJob(handler commands.PurgeExpiredCodesCommandHandler, log logger.ILogger) *PurgeExpiredCodesJob {
	return &PurgeExpiredCodesJob{
		handler: handler,
		cron:    cron.New(),
		logger:  log.With(logger.String("component", "purge_expired_codes_job")),
	}
}

func (j *PurgeExpiredCodesJob) Start() error {
	if _, err := j.cron.AddFunc("@every 1m", j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Purge expired codes job started (running every minute)")
	return nil
}

// Run performs one purge.
func (j *PurgeExpiredCodesJob) Run() {
	ctx := context.Background()
	removed, err := j.handler.Handle(ctx, commands.NewPurgeExpiredCodesCommand(time.Now()))
	if err != nil {
		j.logger.Error("Purge expired codes job failed", logger.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Debug("expired codes purged", logger.Int64("removed", removed))
	}
}

func (j *PurgeExpiredCodesJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Purge expired codes job stopped")
}
