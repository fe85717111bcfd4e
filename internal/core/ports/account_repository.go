// Package ports defines the contracts between the tracking core and its
// infrastructure: repositories, the unit of work, and the credential, token
// and clock collaborators.
package ports

import (
	"context"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
)

// AccountRepository persists courier accounts.
// Lookups that match nothing return *errs.ObjectNotFoundError.
type AccountRepository interface {
	// Add stores a new account. A taken handle yields *errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, a *account.Account) error

	Update(ctx context.Context, a *account.Account) error

	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetForUpdate loads the account and locks its row until the transaction ends.
	// Login uses it to serialize concurrent sign-ins of the same courier.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*account.Account, error)

	FindByHandle(ctx context.Context, handle string) (*account.Account, error)
}
