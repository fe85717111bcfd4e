// Package errs provides the typed errors shared by the tracking service.
//
// Every error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without a cause
//   - Error() for a single-line message and Unwrap() returning the sentinel
//
// Repositories translate storage misses and uniqueness violations into
// ObjectNotFoundError and ObjectAlreadyExistsError so the application layer
// never inspects driver errors directly.
package errs
