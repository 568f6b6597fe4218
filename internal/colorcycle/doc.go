// Package colorcycle produces a slowly evolving colour for spawned
// particles.
//
// [Ramp] is the infinite sequence itself: every channel climbs from low to
// high in steps, blue fastest, then green, then red, and then the whole
// grid is walked again on a descending pass. [Cycler] runs a fresh Ramp on
// its own goroutine and publishes one value per interval into a single
// slot that the simulation loop reads without blocking.
package colorcycle

import "errors"

var (
	// ErrZeroStep is returned for a ramp step of zero.
	ErrZeroStep = errors.New("colorcycle: step cannot be zero")

	// ErrEmptyRamp indicates bounds and step that yield no ascending values.
	ErrEmptyRamp = errors.New("colorcycle: ramp has no values")

	// ErrChannelRange indicates bounds outside the 8-bit channel range.
	ErrChannelRange = errors.New("colorcycle: bounds outside 0..256")
)
