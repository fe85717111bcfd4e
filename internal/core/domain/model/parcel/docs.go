// Package parcel implements the Parcel aggregate and its delivery lifecycle.
//
// Key business rules:
//   - a parcel starts Assigned and only its courier may move it
//   - StartRoute is legal from Assigned only
//   - Finish is legal from Assigned or EnRoute and lands on Completed or Failed
//   - terminal parcels never change again
//
// Rejections are reported as *StateError so callers can tell NotFound,
// NotOwner, WrongState and AlreadyConfirmed apart.
package parcel
