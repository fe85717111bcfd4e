package commands

import (
	"context"
	"fmt"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

// CreateAccountCommandHandler stores a new active courier account with a
// hashed secret.
type CreateAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	verifier   ports.CredentialVerifier
	clock      ports.Clock
}

func NewCreateAccountCommandHandler(
	uowFactory AccountUoWFactory,
	verifier ports.CredentialVerifier,
	clock ports.Clock,
) CreateAccountCommandHandler {
	return CreateAccountCommandHandler{uowFactory: uowFactory, verifier: verifier, clock: clock}
}

// Handle returns *errs.ObjectAlreadyExistsError when the handle is taken.
func (h CreateAccountCommandHandler) Handle(ctx context.Context, cmd CreateAccountCommand) (*account.Account, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	digest, err := h.verifier.Hash(cmd.Secret())
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	a, err := account.NewAccount(kernel.NewUUID(), cmd.Handle(), digest, cmd.FullName(),
		cmd.Email(), cmd.Phone(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AccountRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
