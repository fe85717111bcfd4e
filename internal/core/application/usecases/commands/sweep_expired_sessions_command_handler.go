package commands

import (
	"context"

	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

type SweepExpiredSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
	clock      ports.Clock
	metrics    ports.Metrics
}

func NewSweepExpiredSessionsCommandHandler(
	uowFactory SessionUoWFactory,
	clock ports.Clock,
	metrics ports.Metrics,
) SweepExpiredSessionsCommandHandler {
	return SweepExpiredSessionsCommandHandler{uowFactory: uowFactory, clock: clock, metrics: metrics}
}

// Handle returns how many sessions were deactivated.
func (h SweepExpiredSessionsCommandHandler) Handle(ctx context.Context, cmd SweepExpiredSessionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := services.NewSessionRegistry(uow.SessionRepository(), h.clock).Sweep(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.metrics.RecordSessionsSwept(n)
	return n, nil
}
