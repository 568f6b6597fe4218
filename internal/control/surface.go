package control

import (
	"context"
	"time"

	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

// Cycler is the colour-cycle task toggled by the surface.
type Cycler interface {
	Toggle(ctx context.Context) bool
	Stop()
	Running() bool
}

// maxSpawnBurst is the default cap on held-button spawns per SpawnDue call.
const maxSpawnBurst = 64

// Surface feeds user input into the loop and its parameters. Like the loop
// it belongs to the host's event goroutine.
type Surface struct {
	loop   *sim.Loop
	params *sim.Params
	cycler Cycler
	ctx    context.Context

	spawning bool
	pacer    *sim.Pacer

	palette    []particle.RGB
	paletteIdx int

	backgrounds []particle.RGB
	bgIdx       int
	background  particle.RGB

	fullscreen bool
}

// New wraps loop with the starting params. cycler may be nil, in which
// case colour cycling cannot be enabled.
func New(loop *sim.Loop, params sim.Params, cycler Cycler, spawnInterval time.Duration) *Surface {
	if spawnInterval <= 0 {
		spawnInterval = time.Millisecond
	}
	s := &Surface{
		loop:        loop,
		params:      &params,
		cycler:      cycler,
		ctx:         context.Background(),
		pacer:       sim.NewPacer(spawnInterval, maxSpawnBurst),
		palette:     particle.Rainbow,
		backgrounds: Backgrounds,
		background:  particle.Black,
	}
	for _, name := range ParamNames() {
		s.SetParam(name, s.GetParams()[name])
	}
	return s
}

// Backgrounds is the palette stepped through by NextBackground.
var Backgrounds = []particle.RGB{
	particle.Black,
	particle.MustHex("#0a0a0a"),
	particle.MustHex("#001a33"),
	particle.MustHex("#2d1b2e"),
	particle.MustHex("#001100"),
	particle.White,
}

// WithContext sets the parent context of colour-cycle tasks.
func (s *Surface) WithContext(ctx context.Context) *Surface {
	s.ctx = ctx
	return s
}

// Params is the live parameter set to hand to Loop.Tick.
func (s *Surface) Params() *sim.Params { return s.params }

func (s *Surface) Loop() *sim.Loop { return s.loop }

// Resize updates the simulation-area extent read by the next tick.
func (s *Surface) Resize(width, height float64) {
	s.params.Width, s.params.Height = width, height
	s.params.MouseActive = s.params.MouseActive && s.contains(s.params.Mouse)
}

func (s *Surface) contains(p particle.Vec2) bool {
	return p.X >= 0 && p.X <= s.params.Width && p.Y >= 0 && p.Y <= s.params.Height
}

// PointerMove tracks the pointer and, while the button is held, spawns
// one particle at it.
func (s *Surface) PointerMove(x, y float64) {
	s.params.Mouse = particle.V(x, y)
	s.params.MouseActive = s.contains(s.params.Mouse)
	if s.spawning {
		s.spawnAtPointer()
	}
}

// PointerDown starts held-button spawning with one immediate particle.
func (s *Surface) PointerDown(x, y float64) {
	s.params.Mouse = particle.V(x, y)
	s.params.MouseActive = s.contains(s.params.Mouse)
	s.spawning = true
	s.pacer.Reset()
	s.pacer.Due(time.Now())
	s.spawnAtPointer()
}

func (s *Surface) PointerUp() { s.spawning = false }

// PointerLeave marks the pointer as outside the area.
func (s *Surface) PointerLeave() {
	s.params.MouseActive = false
	s.spawning = false
}

func (s *Surface) Spawning() bool { return s.spawning }

// SetSpawnBurst caps how many particles one SpawnDue call may add.
func (s *Surface) SetSpawnBurst(n int) {
	if n <= 0 {
		n = maxSpawnBurst
	}
	s.pacer = sim.NewPacer(s.pacer.Interval(), n)
}

// SpawnOnce appends one particle at the pointer if the button is held.
func (s *Surface) SpawnOnce() bool {
	if !s.spawning {
		return false
	}
	s.spawnAtPointer()
	return true
}

// SpawnDue appends the particles owed since the last call at the spawn
// interval while the button is held, and returns how many it added.
func (s *Surface) SpawnDue(now time.Time) int {
	if !s.spawning {
		return 0
	}
	n := s.pacer.Due(now)
	for i := 0; i < n; i++ {
		s.spawnAtPointer()
	}
	return n
}

func (s *Surface) spawnAtPointer() {
	s.loop.Spawn(s.params.Mouse, s.params.Size, s.params.Color)
}

// ToggleCycle flips colour cycling and reports whether it is now on.
func (s *Surface) ToggleCycle() bool {
	if s.cycler == nil {
		return false
	}
	s.params.CycleColors = s.cycler.Toggle(s.ctx)
	return s.params.CycleColors
}

// Tick advances the loop one step with the live params. A cycle task that
// ended on its own, e.g. when the parent context was cancelled, turns
// colour cycling off first.
func (s *Surface) Tick(r sim.Renderer) sim.TickStats {
	if s.params.CycleColors && (s.cycler == nil || !s.cycler.Running()) {
		s.params.CycleColors = false
	}
	return s.loop.Tick(s.params, r)
}

// SetColor picks the spawn colour directly.
func (s *Surface) SetColor(c particle.RGB) { s.params.Color = c }

// NextColor steps the spawn colour through the palette.
func (s *Surface) NextColor() particle.RGB {
	s.paletteIdx = (s.paletteIdx + 1) % len(s.palette)
	s.params.Color = s.palette[s.paletteIdx]
	return s.params.Color
}

func (s *Surface) Background() particle.RGB { return s.background }

func (s *Surface) SetBackground(c particle.RGB) { s.background = c }

func (s *Surface) NextBackground() particle.RGB {
	s.bgIdx = (s.bgIdx + 1) % len(s.backgrounds)
	s.background = s.backgrounds[s.bgIdx]
	return s.background
}

func (s *Surface) ToggleFullscreen() bool {
	s.fullscreen = !s.fullscreen
	return s.fullscreen
}

func (s *Surface) Fullscreen() bool { return s.fullscreen }

// Clear removes every live particle.
func (s *Surface) Clear() { s.loop.Clear() }

// Close stops a running colour cycle.
func (s *Surface) Close() {
	if s.cycler != nil {
		s.cycler.Stop()
	}
	s.params.CycleColors = false
}
