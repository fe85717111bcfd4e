// Package kernel holds the value objects shared by every aggregate of the
// tracking domain: UUID identifiers and GeoPoint coordinates.
//
// Both are immutable, and their zero values fail Validate so that a value that
// skipped its constructor is caught before it reaches an aggregate.
package kernel
