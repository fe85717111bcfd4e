package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	SecretMinLength = 4
	SecretMaxLength = 100
	DeviceMaxLength = 300
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand carries a courier's credentials and the client it signs in from.
type LoginCommand struct {
	handle string
	secret string
	device string
	ip     string

	guard guard.ConstructorGuard
}

// NewLoginCommand checks shape only; whether the credentials match is the
// handler's concern. device and ip are optional.
func NewLoginCommand(handle, secret, device, ip string) (LoginCommand, error) {
	c := LoginCommand{
		ip:    strings.TrimSpace(ip),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setHandle(handle),
		c.setSecret(secret),
		c.setDevice(device),
	); err != nil {
		return LoginCommand{}, err
	}

	return c, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Handle() string { return c.handle }
func (c LoginCommand) Secret() string { return c.secret }
func (c LoginCommand) Device() string { return c.device }
func (c LoginCommand) IP() string     { return c.ip }

func (c *LoginCommand) setHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return errs.NewValueIsRequiredError("handle")
	}
	c.handle = handle
	return nil
}

func (c *LoginCommand) setSecret(secret string) error {
	if secret == "" {
		return errs.NewValueIsRequiredError("secret")
	}
	if n := utf8.RuneCountInString(secret); n < SecretMinLength || n > SecretMaxLength {
		return errs.NewValueIsOutOfRangeError("secret length", n, SecretMinLength, SecretMaxLength)
	}
	c.secret = secret
	return nil
}

func (c *LoginCommand) setDevice(device string) error {
	device = strings.TrimSpace(device)
	if utf8.RuneCountInString(device) > DeviceMaxLength {
		return errs.NewValueIsOutOfRangeError("device length", utf8.RuneCountInString(device), 0, DeviceMaxLength)
	}
	c.device = device
	return nil
}
