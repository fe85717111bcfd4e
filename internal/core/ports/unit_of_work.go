package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Repositories obtained from it use the
// transaction opened by Begin, or the plain connection when none is open.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	AccountRepository() AccountRepository
	SessionRepository() SessionRepository
	ParcelRepository() ParcelRepository
	ProofRepository() ProofRepository
}
