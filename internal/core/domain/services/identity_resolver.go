package services

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// IdentityResolver authenticates a bearer token.
type IdentityResolver struct {
	codec    ports.TokenCodec
	sessions SessionRegistry
	accounts ports.AccountRepository
}

func NewIdentityResolver(codec ports.TokenCodec, sessions SessionRegistry, accounts ports.AccountRepository) IdentityResolver {
	return IdentityResolver{codec: codec, sessions: sessions, accounts: accounts}
}

// Resolve checks, in order and stopping at the first failure: the token's
// signature and expiry, its subject, the session, and the account. Signature
// and expiry are checked before any storage read so a forged token never
// reveals whether a session exists.
//
// Auth failures are *AuthError; storage failures are returned as they are.
func (r IdentityResolver) Resolve(ctx context.Context, token string) (*account.Account, error) {
	claims, err := r.codec.Decode(token)
	if err != nil {
		return nil, NewAuthErrorWithCause(InvalidToken, err)
	}

	sub := claims.Subject()
	if sub == "" {
		return nil, NewAuthError(InvalidToken)
	}
	subject, err := kernel.UUIDFromString(sub)
	if err != nil {
		return nil, NewAuthErrorWithCause(InvalidToken, err)
	}

	s, ok, err := r.sessions.IsActive(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok || !s.AccountID().IsEqual(subject) {
		return nil, NewAuthError(SessionNotFound)
	}

	a, err := r.accounts.Get(ctx, subject)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, NewAuthError(AccountMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if !a.IsActive() {
		return nil, NewAuthError(AccountDisabled)
	}

	return a, nil
}
