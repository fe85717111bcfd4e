package session

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	DeviceMaxLength = 300
	IPMaxLength     = 64
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session binds a signed token to the account it was issued for.
type Session struct {
	id        kernel.UUID
	accountID kernel.UUID
	token     string
	device    string
	ip        string
	issuedAt  time.Time
	expiresAt time.Time
	active    bool

	guard guard.ConstructorGuard
}

// NewSession opens an active session. expiresAt must be after issuedAt.
func NewSession(
	id kernel.UUID,
	accountID kernel.UUID,
	token string,
	device string,
	ip string,
	issuedAt time.Time,
	expiresAt time.Time,
) (*Session, error) {
	s := &Session{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setAccountID(accountID),
		s.setToken(token),
		s.setDevice(device),
		s.setIP(ip),
		s.setWindow(issuedAt, expiresAt),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSession rebuilds a Session from persisted state.
func RestoreSession(
	id kernel.UUID,
	accountID kernel.UUID,
	token string,
	device string,
	ip string,
	issuedAt time.Time,
	expiresAt time.Time,
	active bool,
) (*Session, error) {
	s, err := NewSession(id, accountID, token, device, ip, issuedAt, expiresAt)
	if err != nil {
		return nil, err
	}
	s.active = active
	return s, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID        { return s.id }
func (s *Session) AccountID() kernel.UUID { return s.accountID }
func (s *Session) Token() string          { return s.token }
func (s *Session) Device() string         { return s.device }
func (s *Session) IP() string             { return s.ip }
func (s *Session) IssuedAt() time.Time    { return s.issuedAt }
func (s *Session) ExpiresAt() time.Time   { return s.expiresAt }

// IsFlaggedActive reports the stored flag, ignoring expiry.
func (s *Session) IsFlaggedActive() bool { return s.active }

// IsExpiredAt reports whether the validity window closed at or before now.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// IsActiveAt is the read-time activity check: flagged active and not expired.
func (s *Session) IsActiveAt(now time.Time) bool {
	return s.active && !s.IsExpiredAt(now)
}

// Deactivate clears the flag and reports whether it was set.
func (s *Session) Deactivate() bool {
	if !s.active {
		return false
	}
	s.active = false
	return true
}

func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Session) setAccountID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accountID", err)
	}
	s.accountID = id
	return nil
}

func (s *Session) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	s.token = token
	return nil
}

func (s *Session) setDevice(device string) error {
	if n := utf8.RuneCountInString(device); n > DeviceMaxLength {
		return errs.NewValueIsOutOfRangeError("device length", n, 0, DeviceMaxLength)
	}
	s.device = device
	return nil
}

func (s *Session) setIP(ip string) error {
	if len(ip) > IPMaxLength {
		return errs.NewValueIsOutOfRangeError("ip length", len(ip), 0, IPMaxLength)
	}
	s.ip = ip
	return nil
}

func (s *Session) setWindow(issuedAt, expiresAt time.Time) error {
	if issuedAt.IsZero() {
		return errs.NewValueIsRequiredError("issuedAt")
	}
	if !expiresAt.After(issuedAt) {
		return errs.NewValueIsInvalidErrorWithCause("expiresAt",
			fmt.Errorf("%s is not after %s", expiresAt.Format(time.RFC3339), issuedAt.Format(time.RFC3339)))
	}
	s.issuedAt = issuedAt.UTC()
	s.expiresAt = expiresAt.UTC()
	return nil
}
