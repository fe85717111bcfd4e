// Package commands contains the operations that change tracking state. Each
// handler validates its command, opens a unit of work, delegates the rules to
// the domain services and commits.
package commands

import (
	"context"

	"tracking/internal/core/ports"
)

// Unit of Work views narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	ProofRepoFactory interface {
		ProofRepository() ports.ProofRepository
	}

	// AccountUoW serves account administration.
	AccountUoW interface {
		TxManager
		AccountRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// SessionUoW serves logout and the expiry sweep.
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// AuthUoW serves login, which locks the account and rewrites its sessions.
	AuthUoW interface {
		TxManager
		AccountRepoFactory
		SessionRepoFactory
	}

	AuthUoWFactory interface {
		Create() AuthUoW
	}

	// ParcelUoW serves parcel registration.
	ParcelUoW interface {
		TxManager
		AccountRepoFactory
		ParcelRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// DeliveryUoW serves courier operations: the caller's identity is resolved
	// and the parcel changed inside one transaction.
	DeliveryUoW interface {
		TxManager
		AccountRepoFactory
		SessionRepoFactory
		ParcelRepoFactory
		ProofRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)
