package commands

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	NewSecretMinLength = 6
	// NewSecretMaxBytes is bcrypt's input limit.
	NewSecretMaxBytes = 72
)

var ErrCreateAccountCommandIsNotConstructed = errors.New(
	"CreateAccountCommand must be created via NewCreateAccountCommand constructor",
)

// CreateAccountCommand registers a courier. Handle and name rules are the
// account's own; the command only checks the plaintext secret.
type CreateAccountCommand struct {
	handle   string
	secret   string
	fullName string
	email    string
	phone    string

	guard guard.ConstructorGuard
}

func NewCreateAccountCommand(handle, secret, fullName, email, phone string) (CreateAccountCommand, error) {
	switch {
	case secret == "":
		return CreateAccountCommand{}, errs.NewValueIsRequiredError("secret")
	case len(secret) < NewSecretMinLength || len(secret) > NewSecretMaxBytes:
		return CreateAccountCommand{}, errs.NewValueIsOutOfRangeError("secret length", len(secret),
			NewSecretMinLength, NewSecretMaxBytes)
	}

	return CreateAccountCommand{
		handle:   strings.TrimSpace(handle),
		secret:   secret,
		fullName: strings.TrimSpace(fullName),
		email:    strings.TrimSpace(email),
		phone:    strings.TrimSpace(phone),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAccountCommand) Validate() error {
	return c.guard.Validate(ErrCreateAccountCommandIsNotConstructed)
}

func (c CreateAccountCommand) Handle() string   { return c.handle }
func (c CreateAccountCommand) Secret() string   { return c.secret }
func (c CreateAccountCommand) FullName() string { return c.fullName }
func (c CreateAccountCommand) Email() string    { return c.email }
func (c CreateAccountCommand) Phone() string    { return c.phone }
