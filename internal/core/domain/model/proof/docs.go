// Package proof models the one-shot proof-of-delivery record that closes a
// parcel: where the courier stood, what evidence they captured and how the
// hand-over ended.
package proof
