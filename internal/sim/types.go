package sim

import "github.com/san-kum/particlesim/internal/particle"

// Params is the live parameter set read at the top of every tick. The
// control surface owns the ranges; the loop does not re-validate them.
type Params struct {
	Gravity          float64
	Size             float64
	PushForce        float64
	AttractionRadius float64

	Mouse       particle.Vec2
	MouseActive bool

	CycleColors bool
	Color       particle.RGB

	// Width and Height are the current simulation-area extent. Hosts update
	// them before each tick, so a resize is seen one tick late at most.
	Width, Height float64
}

// Renderer receives one filled circle per live particle per tick.
type Renderer interface {
	DrawCircle(x0, y0, x1, y1 float64, c particle.RGB)
}

// ColorSource is sampled once per tick while colour cycling is on.
type ColorSource interface {
	Latest() (particle.RGB, bool)
}

type Observer interface {
	OnTick(st TickStats, ps []particle.Particle)
}

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

type Config struct {
	Seed     int64
	Capacity int
	// RecolorLive repaints every live particle with the sampled cycle colour.
	RecolorLive bool
	Colors      ColorSource
}

type TickStats struct {
	Tick       uint64
	Live       int
	Spawned    int
	Removed    int
	Collisions int
}
