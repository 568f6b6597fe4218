package metrics

import (
	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/physics"
	"github.com/san-kum/particlesim/internal/sim"
)

// Sample is one tick of telemetry.
type Sample struct {
	Tick       uint64
	Live       int
	Spawned    int
	Removed    int
	Collisions int
	Energy     float64
}

// Series names accepted by Recorder.Series.
const (
	SeriesLive       = "live"
	SeriesCollisions = "collisions"
	SeriesEnergy     = "energy"
)

// Recorder keeps per-tick samples. With a positive limit it keeps only the
// most recent limit samples.
type Recorder struct {
	limit   int
	samples []Sample
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) OnTick(st sim.TickStats, ps []particle.Particle) {
	r.samples = append(r.samples, Sample{
		Tick:       st.Tick,
		Live:       st.Live,
		Spawned:    st.Spawned,
		Removed:    st.Removed,
		Collisions: st.Collisions,
		Energy:     physics.TotalKineticEnergy(ps),
	})
	if r.limit > 0 && len(r.samples) > r.limit {
		r.samples = r.samples[len(r.samples)-r.limit:]
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (r *Recorder) Len() int { return len(r.samples) }

func (r *Recorder) Reset() { r.samples = r.samples[:0] }

// Series extracts one column for plotting. Unknown names return nil.
func (r *Recorder) Series(name string) []float64 {
	return SeriesOf(r.samples, name)
}

func SeriesOf(samples []Sample, name string) []float64 {
	var get func(Sample) float64
	switch name {
	case SeriesLive:
		get = func(s Sample) float64 { return float64(s.Live) }
	case SeriesCollisions:
		get = func(s Sample) float64 { return float64(s.Collisions) }
	case SeriesEnergy:
		get = func(s Sample) float64 { return s.Energy }
	default:
		return nil
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out
}
