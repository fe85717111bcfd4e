package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/session"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// Token claims added next to the registered ones.
const (
	ClaimHandle = "handle"
	ClaimName   = "name"
)

// dummySecret is hashed once and compared against when the handle is unknown,
// so a miss costs the same bcrypt work as a wrong password.
const dummySecret = "tracking-login-dummy-secret"

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token      string
	ExpiresAt  time.Time
	Account    *account.Account
	Session    *session.Session
	Superseded int64
}

// LoginCommandHandler signs a courier in: it checks the credentials, retires
// every earlier session of the account and opens a new one under a fresh token.
// The account row stays locked from supersede to commit, so two logins of the
// same courier never interleave.
type LoginCommandHandler struct {
	uowFactory AuthUoWFactory
	verifier   ports.CredentialVerifier
	codec      ports.TokenCodec
	clock      ports.Clock
	metrics    ports.Metrics
	ttl        time.Duration

	dummyDigest func() string
}

// NewLoginCommandHandler creates the handler. A ttl <= 0 defers to the codec default.
func NewLoginCommandHandler(
	uowFactory AuthUoWFactory,
	verifier ports.CredentialVerifier,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
	ttl time.Duration,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		codec:      codec,
		clock:      clock,
		metrics:    metrics,
		ttl:        ttl,
		dummyDigest: sync.OnceValue(func() string {
			digest, _ := verifier.Hash(dummySecret)
			return digest
		}),
	}
}

// Handle returns *services.AuthError with InvalidCredentials for an unknown
// handle or a wrong secret alike, and AccountDisabled for a deactivated account.
func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accounts := uow.AccountRepository()

	a, err := accounts.FindByHandle(ctx, cmd.Handle())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.verifier.Verify(cmd.Secret(), h.dummyDigest())
		return LoginResult{}, h.reject(services.InvalidCredentials)
	}
	if err != nil {
		return LoginResult{}, err
	}

	if !h.verifier.Verify(cmd.Secret(), a.PasswordHash()) {
		return LoginResult{}, h.reject(services.InvalidCredentials)
	}
	if !a.IsActive() {
		return LoginResult{}, h.reject(services.AccountDisabled)
	}

	a, err = accounts.GetForUpdate(ctx, a.ID())
	if err != nil {
		return LoginResult{}, err
	}
	// The locked copy is authoritative: the account may have been disabled
	// since the lookup above.
	if !a.IsActive() {
		return LoginResult{}, h.reject(services.AccountDisabled)
	}

	registry := services.NewSessionRegistry(uow.SessionRepository(), h.clock)

	superseded, err := registry.SupersedeAll(ctx, a.ID())
	if err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := h.codec.Issue(ports.Claims{
		ports.ClaimSubject: a.ID().String(),
		ClaimHandle:        a.Handle(),
		ClaimName:          a.FullName(),
	}, h.ttl)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	s, err := registry.Open(ctx, a.ID(), token, expiresAt, cmd.Device(), cmd.IP())
	if err != nil {
		return LoginResult{}, err
	}

	a.RecordLogin(h.clock.Now())
	if err = accounts.Update(ctx, a); err != nil {
		return LoginResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}

	h.metrics.RecordLogin("success")
	h.metrics.RecordSessionsSuperseded(superseded)

	return LoginResult{
		Token:      token,
		ExpiresAt:  expiresAt,
		Account:    a,
		Session:    s,
		Superseded: superseded,
	}, nil
}

func (h LoginCommandHandler) reject(failure services.AuthFailure) error {
	h.metrics.RecordLogin(failure.Code())
	return services.NewAuthError(failure)
}
