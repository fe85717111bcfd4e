// Package guard lets aggregates tell a constructed value from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in aggregates whose zero value is not usable.
// Only the constructor (or a Restore function used by repositories) calls
// NewConstructorGuard, so a struct literal fails Validate.
//
//	type Parcel struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (p *Parcel) Validate() error {
//	    return p.guard.Validate(ErrParcelIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when that is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
