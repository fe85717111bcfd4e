// Package queries holds the read side: every query authenticates its bearer
// token and reads through repositories bound to the plain connection, never
// inside a transaction.
package queries

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// Repositories is the read view a query runs on.
type Repositories interface {
	AccountRepository() ports.AccountRepository
	SessionRepository() ports.SessionRepository
	ParcelRepository() ports.ParcelRepository
	ProofRepository() ports.ProofRepository
}

type RepositoriesFactory interface {
	Create() Repositories
}

// reader carries what every query handler needs to resolve its caller.
type reader struct {
	factory RepositoriesFactory
	codec   ports.TokenCodec
	clock   ports.Clock
	metrics ports.Metrics
}

func newReader(factory RepositoriesFactory, codec ports.TokenCodec, clock ports.Clock, metrics ports.Metrics) reader {
	return reader{factory: factory, codec: codec, clock: clock, metrics: metrics}
}

func (r reader) resolver(repos Repositories) services.IdentityResolver {
	registry := services.NewSessionRegistry(repos.SessionRepository(), r.clock)
	return services.NewIdentityResolver(r.codec, registry, repos.AccountRepository())
}

func (r reader) authenticate(ctx context.Context, repos Repositories, token string) (*account.Account, error) {
	a, err := r.resolver(repos).Resolve(ctx, token)
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		r.metrics.RecordAuthFailure(authErr.Failure.Code())
	}
	return a, err
}

func (r reader) stateMachine(repos Repositories, opts ...services.DeliveryOption) services.DeliveryStateMachine {
	return services.NewDeliveryStateMachine(repos.ParcelRepository(), repos.ProofRepository(), r.clock, opts...)
}

func recordViolation(metrics ports.Metrics, err error) {
	var stateErr *parcel.StateError
	if errors.As(err, &stateErr) {
		metrics.RecordStateViolation(stateErr.Violation.Code())
	}
}
