package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthenticationFailed matches every *AuthError via errors.Is.
var ErrAuthenticationFailed = errors.New("authentication failed")

// AuthFailure is the internal reason behind an AuthError. It is logged, never
// shown to the caller.
type AuthFailure int

const (
	UnknownFailure AuthFailure = iota
	InvalidCredentials
	InvalidToken
	SessionNotFound
	AccountMissing
	AccountDisabled
)

func (f AuthFailure) String() string {
	switch f {
	case InvalidCredentials:
		return "invalid credentials"
	case InvalidToken:
		return "invalid token"
	case SessionNotFound:
		return "session not found"
	case AccountMissing:
		return "account missing"
	case AccountDisabled:
		return "account disabled"
	default:
		return "unknown"
	}
}

// Code is the snake_case form of String, used as a metrics label.
func (f AuthFailure) Code() string {
	return strings.ReplaceAll(f.String(), " ", "_")
}

type AuthError struct {
	Failure AuthFailure
	Cause   error
}

func NewAuthError(failure AuthFailure) *AuthError {
	return &AuthError{Failure: failure}
}

func NewAuthErrorWithCause(failure AuthFailure, cause error) *AuthError {
	return &AuthError{Failure: failure, Cause: cause}
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrAuthenticationFailed, e.Failure, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAuthenticationFailed, e.Failure)
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// IsForbidden is true when the caller is known but not allowed in.
func (e *AuthError) IsForbidden() bool {
	return e.Failure == AccountDisabled
}

// AuthFailureOf extracts the failure kind, or UnknownFailure when err is not an AuthError.
func AuthFailureOf(err error) AuthFailure {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Failure
	}
	return UnknownFailure
}
