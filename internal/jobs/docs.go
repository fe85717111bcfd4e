// Package jobs provides scheduled background tasks for the tracking service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// SessionSweepJob deactivates sessions whose expiry has passed. It runs on
// SESSION_SWEEP_SCHEDULE, every 15 minutes by default. It is housekeeping only:
// expired sessions never authenticate, whether or not the sweep has run.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SessionSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// Overlapping runs are skipped. A failed sweep is logged and retried on the next tick.
package jobs
