// Package sha256 computes SHA-256 digests (FIPS 180-4) of complete,
// in-memory messages.
//
// A digest call pads the message to a whole number of 64-byte blocks,
// expands every block into a 64-word schedule, runs the compression
// function over the running hash state, and serializes the final state
// big-endian:
//
//	message -> Pad -> Blocks -> (NewSchedule -> Compress)* -> Digest
//
// The round constants and initial hash words live in a Table. The table
// is derived from the fractional parts of prime roots, built once by
// DefaultTable and shared read-only by every caller, so independent
// digests run in parallel without locking.
//
// There is no streaming interface: each call consumes one fully
// materialized message.
package sha256
