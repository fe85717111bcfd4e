package commands

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrStartRouteCommandIsNotConstructed = errors.New(
	"StartRouteCommand must be created via NewStartRouteCommand constructor",
)

// StartRouteCommand moves a parcel the caller holds from Assigned to EnRoute.
type StartRouteCommand struct {
	token    string
	parcelID kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewStartRouteCommand accepts an empty note, which leaves the parcel notes as they are.
func NewStartRouteCommand(token string, parcelID kernel.UUID, note string) (StartRouteCommand, error) {
	c := StartRouteCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setToken(&c.token, token),
		setParcelID(&c.parcelID, parcelID),
	); err != nil {
		return StartRouteCommand{}, err
	}

	return c, nil
}

func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

func (c StartRouteCommand) Token() string         { return c.token }
func (c StartRouteCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c StartRouteCommand) Note() string          { return c.note }

func setToken(dst *string, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	*dst = token
	return nil
}

func setParcelID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	*dst = id
	return nil
}
