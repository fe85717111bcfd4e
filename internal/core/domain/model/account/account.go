package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	HandleMinLength   = 3
	HandleMaxLength   = 60
	FullNameMaxLength = 150
)

// ErrAccountIsNotConstructed is returned when an Account bypassed NewAccount/RestoreAccount.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

// Account is the aggregate root for a courier's identity.
//
// Invariants:
//   - handle is trimmed and between HandleMinLength and HandleMaxLength runes
//   - passwordHash is never empty; the plaintext never reaches this type
//   - fullName is required
type Account struct {
	id           kernel.UUID
	handle       string
	passwordHash string
	fullName     string
	email        string
	phone        string
	active       bool
	lastSeenAt   *time.Time
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewAccount creates an active account that has never logged in.
func NewAccount(
	id kernel.UUID,
	handle string,
	passwordHash string,
	fullName string,
	email string,
	phone string,
	createdAt time.Time,
) (*Account, error) {
	a := &Account{
		active:    true,
		email:     strings.TrimSpace(email),
		phone:     strings.TrimSpace(phone),
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setHandle(handle),
		a.setPasswordHash(passwordHash),
		a.setFullName(fullName),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount rebuilds an Account from persisted state.
func RestoreAccount(
	id kernel.UUID,
	handle string,
	passwordHash string,
	fullName string,
	email string,
	phone string,
	active bool,
	lastSeenAt *time.Time,
	createdAt time.Time,
) (*Account, error) {
	a, err := NewAccount(id, handle, passwordHash, fullName, email, phone, createdAt)
	if err != nil {
		return nil, err
	}
	a.active = active
	if lastSeenAt != nil {
		t := lastSeenAt.UTC()
		a.lastSeenAt = &t
	}
	return a, nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Account) ID() kernel.UUID        { return a.id }
func (a *Account) Handle() string         { return a.handle }
func (a *Account) PasswordHash() string   { return a.passwordHash }
func (a *Account) FullName() string       { return a.fullName }
func (a *Account) Email() string          { return a.email }
func (a *Account) Phone() string          { return a.phone }
func (a *Account) IsActive() bool         { return a.active }
func (a *Account) CreatedAt() time.Time   { return a.createdAt }
func (a *Account) LastSeenAt() *time.Time { return a.lastSeenAt }

// RecordLogin stamps the last-seen time.
func (a *Account) RecordLogin(at time.Time) {
	t := at.UTC()
	a.lastSeenAt = &t
}

// Deactivate blocks future logins and makes existing tokens resolve to a
// disabled account.
func (a *Account) Deactivate() {
	a.active = false
}

func (a *Account) Activate() {
	a.active = true
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// NormalizeHandle returns handle in the form it is stored and looked up by.
func NormalizeHandle(handle string) string {
	return strings.TrimSpace(handle)
}

func (a *Account) setHandle(handle string) error {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return errs.NewValueIsRequiredError("handle")
	}
	if n := utf8.RuneCountInString(handle); n < HandleMinLength || n > HandleMaxLength {
		return errs.NewValueIsOutOfRangeErrorWithCause("handle length", n, HandleMinLength, HandleMaxLength,
			fmt.Errorf("handle %q", handle))
	}
	a.handle = handle
	return nil
}

func (a *Account) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	a.passwordHash = hash
	return nil
}

func (a *Account) setFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("fullName")
	}
	if utf8.RuneCountInString(name) > FullNameMaxLength {
		return errs.NewValueIsOutOfRangeError("fullName length", utf8.RuneCountInString(name), 1, FullNameMaxLength)
	}
	a.fullName = name
	return nil
}
