package metrics

import (
	"testing"

	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 5; i++ {
		r.OnTick(sim.TickStats{Tick: uint64(i), Live: i}, nil)
	}

	if r.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", r.Len())
	}
	if r.Samples()[0].Tick != 2 {
		t.Errorf("expected oldest tick 2, got %d", r.Samples()[0].Tick)
	}

	live := r.Series(SeriesLive)
	want := []float64{2, 3, 4}
	for i := range want {
		if live[i] != want[i] {
			t.Errorf("live[%d]: expected %f, got %f", i, want[i], live[i])
		}
	}
}

func TestRecorderSeries(t *testing.T) {
	r := NewRecorder(0)
	p := particle.New(particle.V(0, 0), 2, particle.White)
	p.Vel = particle.V(1, 0)
	r.OnTick(sim.TickStats{Collisions: 7}, []particle.Particle{p})

	if got := r.Series(SeriesCollisions); len(got) != 1 || got[0] != 7 {
		t.Errorf("unexpected collisions series %v", got)
	}
	if got := r.Series(SeriesEnergy); got[0] != 1 {
		t.Errorf("expected energy 1, got %v", got)
	}
	if r.Series("pressure") != nil {
		t.Error("expected nil for unknown series")
	}

	r.Reset()
	if r.Len() != 0 {
		t.Error("expected empty recorder after reset")
	}
}
