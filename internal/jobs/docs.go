// Package jobs runs periodic maintenance with github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. PurgeExpiredCodesJob runs every minute and deletes one-time codes that
//     are expired, consumed or out of attempts.
//  2. PurgeAbandonedGuestOrdersJob runs hourly and deletes guest drafts that
//     were never reconciled and are older than the configured retention.
//
// # Usage
//
//	jobManager := root.CreateJobManager()
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Job failures are logged and retried on the next tick.
package jobs
