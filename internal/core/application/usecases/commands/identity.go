package commands

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

type identityRepos interface {
	AccountRepoFactory
	SessionRepoFactory
}

// authenticate resolves token against the repositories of uow and counts any
// rejection under its internal reason.
func authenticate(
	ctx context.Context,
	uow identityRepos,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
	token string,
) (*account.Account, error) {
	registry := services.NewSessionRegistry(uow.SessionRepository(), clock)
	resolver := services.NewIdentityResolver(codec, registry, uow.AccountRepository())

	a, err := resolver.Resolve(ctx, token)
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		metrics.RecordAuthFailure(authErr.Failure.Code())
	}
	return a, err
}
