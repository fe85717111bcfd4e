package parcel

import (
	"errors"
	"fmt"
)

// ErrStateViolation matches every *StateError via errors.Is.
var ErrStateViolation = errors.New("parcel state violation")

// Violation classifies a rejected parcel operation.
type Violation int

const (
	ViolationUnknown Violation = iota
	NotFound
	NotOwner
	WrongState
	AlreadyConfirmed
)

func (v Violation) String() string {
	switch v {
	case NotFound:
		return "NotFound"
	case NotOwner:
		return "NotOwner"
	case WrongState:
		return "WrongState"
	case AlreadyConfirmed:
		return "AlreadyConfirmed"
	default:
		return "Unknown"
	}
}

// Code returns a snake_case label for the violation.
func (v Violation) Code() string {
	switch v {
	case NotFound:
		return "not_found"
	case NotOwner:
		return "not_owner"
	case WrongState:
		return "wrong_state"
	case AlreadyConfirmed:
		return "already_confirmed"
	default:
		return "unknown"
	}
}

// StateError is a business-rule rejection the caller can act on.
type StateError struct {
	Violation Violation
	ParcelID  string
	Action    string
	Status    Status
}

func NewNotFoundError(parcelID string) *StateError {
	return &StateError{Violation: NotFound, ParcelID: parcelID}
}

func NewNotOwnerError(parcelID string) *StateError {
	return &StateError{Violation: NotOwner, ParcelID: parcelID}
}

func NewAlreadyConfirmedError(parcelID string) *StateError {
	return &StateError{Violation: AlreadyConfirmed, ParcelID: parcelID}
}

func newWrongStateError(action string, current Status) *StateError {
	return &StateError{Violation: WrongState, Action: action, Status: current}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s (parcel %s)", ErrStateViolation, e.detail(), e.ParcelID)
}

// Reason is the client-facing message. NotOwner reads exactly like NotFound.
func (e *StateError) Reason() string {
	if e.Violation == NotOwner {
		return NewNotFoundError(e.ParcelID).detail()
	}
	return e.detail()
}

func (e *StateError) detail() string {
	switch e.Violation {
	case NotFound:
		return "parcel not found"
	case NotOwner:
		return "parcel is assigned to another courier"
	case WrongState:
		return fmt.Sprintf("cannot %s: current status is %s", e.Action, e.Status.Code())
	case AlreadyConfirmed:
		return "parcel already has a proof of delivery"
	default:
		return "unknown violation"
	}
}

func (e *StateError) Is(target error) bool {
	return target == ErrStateViolation
}

// IsViolation reports whether err carries a StateError of kind v.
func IsViolation(err error, v Violation) bool {
	var se *StateError
	return errors.As(err, &se) && se.Violation == v
}
