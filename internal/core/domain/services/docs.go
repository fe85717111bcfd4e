// Package services holds the domain services of the tracking core:
//   - SessionRegistry keeps at most one active session per account
//   - IdentityResolver turns a bearer token into an authenticated account
//   - DeliveryStateMachine drives parcels to a terminal status and attaches
//     the single proof of delivery
//
// Services are cheap values built around repositories taken from the current
// unit of work, so every call runs inside the caller's transaction.
package services
