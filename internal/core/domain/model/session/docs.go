// Package session models an issued bearer token and its validity window.
//
// A Session is active while its flag is set and its expiry lies in the future.
// Expiry is evaluated at read time; an expired session keeps active=true in
// storage until it is superseded, closed or swept.
package session
