package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	sessionSweepJob *SessionSweepJob
}

// NewJobManager wires the jobs to their command handlers.
func NewJobManager(sweepHandler SweepHandler, sweepSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		sessionSweepJob: NewSessionSweepJob(sweepHandler, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionSweepJob.Stop()
}
