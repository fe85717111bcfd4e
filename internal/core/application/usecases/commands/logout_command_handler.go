package commands

import (
	"context"

	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// LogoutCommandHandler deactivates a session. It is idempotent: an unknown,
// already closed or forged token reports false and never fails.
type LogoutCommandHandler struct {
	uowFactory SessionUoWFactory
	clock      ports.Clock
}

func NewLogoutCommandHandler(uowFactory SessionUoWFactory, clock ports.Clock) LogoutCommandHandler {
	return LogoutCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle reports whether a session was closed.
func (h LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	closed, err := services.NewSessionRegistry(uow.SessionRepository(), h.clock).Close(ctx, cmd.Token())
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return closed, nil
}
