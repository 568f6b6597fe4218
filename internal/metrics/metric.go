// Package metrics summarises a running simulation from the per-tick stats
// the loop hands its observers.
package metrics

import (
	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

// Metric is an observer that reduces a run to one number.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Standard returns the metrics reported after a headless run.
func Standard() []Metric {
	return []Metric{
		NewEnergy(),
		NewCollisionRate(),
		NewRetention(),
		NewPopulation(),
		NewEnergyDrift(),
	}
}

// Values collects name -> value for ms. A Population also reports its
// peak as "peak_live".
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms)+1)
	for _, m := range ms {
		out[m.Name()] = m.Value()
		if p, ok := m.(*Population); ok {
			out["peak_live"] = float64(p.Peak())
		}
	}
	return out
}

type CollisionRate struct {
	sum     int
	samples int
}

func NewCollisionRate() *CollisionRate { return &CollisionRate{} }

func (c *CollisionRate) Name() string { return "collisions_per_tick" }

func (c *CollisionRate) OnTick(st sim.TickStats, _ []particle.Particle) {
	c.sum += st.Collisions
	c.samples++
}

func (c *CollisionRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *CollisionRate) Reset() {
	c.sum = 0
	c.samples = 0
}

// Retention is the share of particles added during the run that had not
// left the area by its last observed tick.
type Retention struct {
	spawned int
	removed int
}

func NewRetention() *Retention { return &Retention{} }

func (r *Retention) Name() string { return "retention" }

func (r *Retention) OnTick(st sim.TickStats, _ []particle.Particle) {
	r.spawned += st.Spawned
	r.removed += st.Removed
}

func (r *Retention) Value() float64 {
	if r.spawned == 0 {
		return 1.0
	}
	return 1.0 - float64(r.removed)/float64(r.spawned)
}

func (r *Retention) Reset() {
	r.spawned = 0
	r.removed = 0
}

// Population tracks the mean and peak live count.
type Population struct {
	sum     int
	peak    int
	samples int
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string { return "mean_live" }

func (p *Population) OnTick(st sim.TickStats, _ []particle.Particle) {
	p.sum += st.Live
	p.peak = max(p.peak, st.Live)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.sum) / float64(p.samples)
}

func (p *Population) Peak() int { return p.peak }

func (p *Population) Reset() {
	p.sum = 0
	p.peak = 0
	p.samples = 0
}
