package commands

import (
	"errors"

	"tracking/internal/pkg/guard"
)

var ErrSweepExpiredSessionsCommandIsNotConstructed = errors.New(
	"SweepExpiredSessionsCommand must be created via NewSweepExpiredSessionsCommand constructor",
)

// SweepExpiredSessionsCommand clears the active flag of sessions past expiry.
// Session validity never depends on it running.
type SweepExpiredSessionsCommand struct {
	guard guard.ConstructorGuard
}

func NewSweepExpiredSessionsCommand() SweepExpiredSessionsCommand {
	return SweepExpiredSessionsCommand{guard: guard.NewConstructorGuard()}
}

func (c SweepExpiredSessionsCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredSessionsCommandIsNotConstructed)
}
