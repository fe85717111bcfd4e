package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/session"
)

// SessionRepository persists issued sessions. The bulk deactivation methods are
// single conditional updates so they stay atomic at the storage boundary.
type SessionRepository interface {
	Add(ctx context.Context, s *session.Session) error

	// FindActiveByToken returns the session flagged active for token, expired or
	// not, or *errs.ObjectNotFoundError.
	FindActiveByToken(ctx context.Context, token string) (*session.Session, error)

	// DeactivateAllForAccount clears the active flag on every active session of
	// accountID and returns how many rows changed.
	DeactivateAllForAccount(ctx context.Context, accountID kernel.UUID) (int64, error)

	// DeactivateByToken clears the flag on the active session for token and
	// reports whether a row changed.
	DeactivateByToken(ctx context.Context, token string) (bool, error)

	// DeactivateExpired clears the flag on active sessions whose expiry is at or
	// before now.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
