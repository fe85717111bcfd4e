// Package account models the courier identity that signs in to the tracking
// service.
//
// An Account owns a unique handle, a salted password hash, profile fields and an
// active flag. The core only mutates its last-seen timestamp (on login); the
// active flag is changed by administrative tooling.
package account
