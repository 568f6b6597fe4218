package metrics

import (
	"math"

	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/physics"
	"github.com/san-kum/particlesim/internal/sim"
)

// Energy is the mean total kinetic energy of the live set per tick.
type Energy struct {
	total   float64
	last    float64
	samples int
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy" }

func (e *Energy) OnTick(_ sim.TickStats, ps []particle.Particle) {
	e.last = physics.TotalKineticEnergy(ps)
	e.total += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.total = 0
	e.last = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of kinetic energy from the
// first non-zero sample. With friction and restitution below one it only
// grows through gravity and pointer pushes.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnTick(_ sim.TickStats, ps []particle.Particle) {
	energy := physics.TotalKineticEnergy(ps)
	if e.initial == 0 {
		e.initial = energy
		return
	}
	drift := math.Abs(energy-e.initial) / e.initial
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
}
