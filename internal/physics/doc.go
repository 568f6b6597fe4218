// Package physics advances particles one tick at a time.
//
// The three per-tick operations act on a single particle or pair and never
// fail:
//
//   - [Integrate]: friction, gravity, displacement and pointer push
//   - [Resolve]: impulse exchange between two overlapping circles
//   - [Enforce]: speed clamp and reflection off the area edges
//
// Degenerate geometry (coincident centres, pointer exactly on a centre) is
// a defined no-op rather than an error.
//
// # Example
//
//	physics.ResolvePairs(set.Items())
//	for i := range set.Items() {
//	    p := set.At(i)
//	    physics.Enforce(p, w, h)
//	    physics.Integrate(p, gravity, mouse, push, radius)
//	}
package physics

const (
	// Friction multiplies both velocity components once per tick.
	Friction = 0.99
	// Restitution is the fraction of normal velocity kept after a collision.
	Restitution = 0.8
	// MaxSpeed bounds each velocity component.
	MaxSpeed = 10.0
)
