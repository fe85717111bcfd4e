package queries

import (
	"errors"
	"strings"

	"tracking/internal/pkg/guard"
)

var ErrValidateTokenQueryIsNotConstructed = errors.New(
	"ValidateTokenQuery must be created via NewValidateTokenQuery constructor",
)

// ValidateTokenQuery reports whether a token would authenticate right now.
// An empty token is accepted and reported invalid.
type ValidateTokenQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewValidateTokenQuery(token string) ValidateTokenQuery {
	return ValidateTokenQuery{token: strings.TrimSpace(token), guard: guard.NewConstructorGuard()}
}

func (q ValidateTokenQuery) Validate() error {
	return q.guard.Validate(ErrValidateTokenQueryIsNotConstructed)
}

func (q ValidateTokenQuery) Token() string { return q.token }

// ValidateTokenQueryResponse carries the account only when Valid is true.
// Failure holds the authentication error behind an invalid answer; it is for
// server-side logging and never leaves the process.
type ValidateTokenQueryResponse struct {
	Valid   bool
	Message string
	Account *AccountResponse
	Failure error
}
