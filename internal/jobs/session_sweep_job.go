package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every 15 minutes, on second zero.
const DefaultSweepSchedule = "0 */15 * * * *"

const sweepTimeout = time.Minute

// SweepHandler deactivates sessions whose expiry has passed.
type SweepHandler interface {
	Handle(ctx context.Context, cmd commands.SweepExpiredSessionsCommand) (int64, error)
}

// SessionSweepJob flips expired sessions to inactive on a schedule. Token
// resolution already ignores expired sessions, so a missed run only leaves
// stale rows behind.
type SessionSweepJob struct {
	handler  SweepHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionSweepJob creates the job. An empty schedule uses DefaultSweepSchedule.
func NewSessionSweepJob(handler SweepHandler, schedule string, logger *slog.Logger) *SessionSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &SessionSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and logs its result.
func (j *SessionSweepJob) RunOnce(ctx context.Context) (int64, error) {
	n, err := j.handler.Handle(ctx, commands.NewSweepExpiredSessionsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Expired sessions deactivated", "count", n)
	}
	return n, nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
