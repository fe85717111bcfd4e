package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/session"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// SessionRegistry owns the single-active-session rule.
//
// Login must call SupersedeAll before Open inside one transaction; the account
// row lock taken by the login handler keeps two logins of the same courier
// from interleaving between the two steps.
type SessionRegistry struct {
	repo  ports.SessionRepository
	clock ports.Clock
}

func NewSessionRegistry(repo ports.SessionRepository, clock ports.Clock) SessionRegistry {
	return SessionRegistry{repo: repo, clock: clock}
}

// SupersedeAll deactivates every active session of subject.
func (r SessionRegistry) SupersedeAll(ctx context.Context, subject kernel.UUID) (int64, error) {
	if err := subject.Validate(); err != nil {
		return 0, err
	}
	n, err := r.repo.DeactivateAllForAccount(ctx, subject)
	if err != nil {
		return 0, fmt.Errorf("supersede sessions: %w", err)
	}
	return n, nil
}

// Open records a new active session issued now.
func (r SessionRegistry) Open(
	ctx context.Context,
	subject kernel.UUID,
	token string,
	expiresAt time.Time,
	device string,
	ip string,
) (*session.Session, error) {
	s, err := session.NewSession(kernel.NewUUID(), subject, token, device, ip, r.clock.Now(), expiresAt)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Add(ctx, s); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return s, nil
}

// IsActive returns the session for token when it is flagged active and not yet
// expired. Expired rows are reported inactive without being written.
func (r SessionRegistry) IsActive(ctx context.Context, token string) (*session.Session, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	s, err := r.repo.FindActiveByToken(ctx, token)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup session: %w", err)
	}
	if !s.IsActiveAt(r.clock.Now()) {
		return nil, false, nil
	}
	return s, true, nil
}

// Close deactivates the active session for token. Unknown or already closed
// tokens return false.
func (r SessionRegistry) Close(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	closed, err := r.repo.DeactivateByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("close session: %w", err)
	}
	return closed, nil
}

// Sweep deactivates sessions whose expiry has passed. Correctness never
// depends on it; IsActive already ignores expired rows.
func (r SessionRegistry) Sweep(ctx context.Context) (int64, error) {
	n, err := r.repo.DeactivateExpired(ctx, r.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return n, nil
}
