// Package viz hosts the simulation in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live simulation, drawn on a braille [Canvas] with a
//     stats pane and parameter bars
//   - [NewMenu]: preset picker that tunes a configuration before starting
//   - Theme selection with 5 built-in colour schemes
//
// The canvas is the simulation area, one braille sub-pixel per unit, so a
// terminal cell is 2x4 units. Mouse presses spawn particles, motion pushes
// them away.
//
// # Key Bindings
//
//	C     - Toggle colour cycling
//	P     - Next particle colour
//	B     - Next background
//	X     - Clear all particles
//	F     - Fullscreen (hide chrome)
//	Tab   - Select parameter, Up/Down to tune it
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
