package queries

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrWhoAmIQueryIsNotConstructed = errors.New(
	"WhoAmIQuery must be created via NewWhoAmIQuery constructor",
)

// WhoAmIQuery returns the profile behind a bearer token.
type WhoAmIQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewWhoAmIQuery(token string) (WhoAmIQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return WhoAmIQuery{}, errs.NewValueIsRequiredError("token")
	}
	return WhoAmIQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q WhoAmIQuery) Validate() error {
	return q.guard.Validate(ErrWhoAmIQueryIsNotConstructed)
}

func (q WhoAmIQuery) Token() string { return q.token }
