package automation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/particlesim/internal/control"
	"github.com/san-kum/particlesim/internal/metrics"
	"github.com/san-kum/particlesim/internal/sim"
)

// Sweep runs the same seeded session once per value of one parameter.
type Sweep struct {
	Param     string
	Min, Max  float64
	NumSteps  int
	Particles int
	Ticks     int
	Seed      int64
}

type SweepResult struct {
	Value      float64
	Last       sim.TickStats
	Energy     float64
	Collisions float64
}

// RunSweep evaluates each swept value on a fresh loop seeded identically,
// with particles scattered across the area of base.
func RunSweep(ctx context.Context, sweep Sweep, base sim.Params) ([]SweepResult, error) {
	if _, ok := control.Ranges[sweep.Param]; !ok {
		return nil, fmt.Errorf("%w: %s", control.ErrUnknownParam, sweep.Param)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", ErrInvalidStep)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		loop := sim.New(sim.Config{Seed: sweep.Seed})
		surface := control.New(loop, base, nil, 0)
		surface.SetParam(sweep.Param, sweep.Min+float64(i)*paramStep)

		energy := metrics.NewEnergy()
		collisions := metrics.NewCollisionRate()
		loop.AddObserver(energy)
		loop.AddObserver(collisions)

		loop.Scatter(sweep.Particles, surface.Params())
		last := loop.Run(surface.Params(), sweep.Ticks)

		value := surface.GetParams()[sweep.Param]
		results = append(results, SweepResult{
			Value:      value,
			Last:       last,
			Energy:     energy.Value(),
			Collisions: collisions.Value(),
		})
		log.Debug("sweep", "param", sweep.Param, "value", value, "live", last.Live)
	}

	return results, nil
}
