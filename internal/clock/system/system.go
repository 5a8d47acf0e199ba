// Package system provides a real clock implementation.
package system

import "time"

// Clock implements digest.Clock using the wall clock.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current UTC time with the monotonic reading stripped,
// so values compare equal after a JSON or CBOR round trip.
func (Clock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
