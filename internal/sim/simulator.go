package sim

import (
	"math/rand"

	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/physics"
)

// Loop owns the live set. All mutation happens on the goroutine that calls
// Tick, Spawn and Clear; it is not safe for concurrent use.
type Loop struct {
	particles   *particle.Set
	colors      ColorSource
	recolorLive bool
	rng         *rand.Rand
	observers   []Observer

	state   State
	ticks   uint64
	spawned int
}

func New(cfg Config) *Loop {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 256
	}
	return &Loop{
		particles:   particle.NewSet(capacity),
		colors:      cfg.Colors,
		recolorLive: cfg.RecolorLive,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		observers:   make([]Observer, 0),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Spawn appends a particle with a random initial velocity in [-1,1]².
func (l *Loop) Spawn(pos particle.Vec2, size float64, color particle.RGB) {
	p := particle.New(pos, size, color)
	p.Vel = particle.V(l.rng.Float64()*2-1, l.rng.Float64()*2-1)
	l.particles.Add(p)
	l.spawned++
}

// Scatter spawns n particles at uniformly random positions inside the area
// of p, with p's size and colour.
func (l *Loop) Scatter(n int, p *Params) {
	for i := 0; i < n; i++ {
		pos := particle.V(l.rng.Float64()*p.Width, l.rng.Float64()*p.Height)
		l.Spawn(pos, p.Size, p.Color)
	}
}

// Add appends p unchanged.
func (l *Loop) Add(p particle.Particle) {
	l.particles.Add(p)
	l.spawned++
}

func (l *Loop) Clear() { l.particles.Clear() }

// Tick advances the simulation one step: sample the colour cycle, resolve
// every pair, then per particle enforce the boundary, integrate and render,
// and finally drop particles whose centre left the area.
func (l *Loop) Tick(p *Params, r Renderer) TickStats {
	l.state = Running

	items := l.particles.Items()

	if p.CycleColors && l.colors != nil {
		if c, ok := l.colors.Latest(); ok {
			p.Color = c
			if l.recolorLive {
				for i := range items {
					items[i].Color = c
				}
			}
		}
	}

	st := TickStats{Tick: l.ticks, Spawned: l.spawned}
	st.Collisions = physics.ResolvePairs(items)

	radius := 0.0
	if p.MouseActive {
		radius = p.AttractionRadius
	}

	for i := range items {
		pt := &items[i]
		physics.Enforce(pt, p.Width, p.Height)
		physics.Integrate(pt, p.Gravity, p.Mouse, p.PushForce, radius)
		if r != nil {
			x0, y0, x1, y1 := pt.Bounds()
			r.DrawCircle(x0, y0, x1, y1, pt.Color)
		}
	}

	st.Removed = l.particles.Retain(func(pt *particle.Particle) bool {
		return physics.Inside(pt, p.Width, p.Height)
	})
	st.Live = l.particles.Len()

	l.ticks++
	l.spawned = 0

	for _, o := range l.observers {
		o.OnTick(st, l.particles.Items())
	}
	return st
}

// Run performs n ticks without rendering and returns the last stats.
func (l *Loop) Run(p *Params, n int) TickStats {
	var st TickStats
	for i := 0; i < n; i++ {
		st = l.Tick(p, nil)
	}
	return st
}

func (l *Loop) State() State  { return l.state }
func (l *Loop) Ticks() uint64 { return l.ticks }
func (l *Loop) Len() int      { return l.particles.Len() }

// Particles returns the live set. The slice is only valid until the next
// mutating call.
func (l *Loop) Particles() []particle.Particle { return l.particles.Items() }

// Snapshot copies the live set.
func (l *Loop) Snapshot() []particle.Particle { return l.particles.Snapshot() }
