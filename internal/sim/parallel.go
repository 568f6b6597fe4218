package sim

import (
	"context"

	"github.com/san-kum/particlesim/internal/particle"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one headless run.
type Result struct {
	Seed      int64
	Last      TickStats
	Particles []particle.Particle
}

// Ensemble runs independent headless sessions concurrently, one loop per
// goroutine, seeds counting up from seedStart.
type Ensemble struct {
	numRuns   int
	seedStart int64
}

func NewEnsemble(numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart}
}

// Run builds each session with setup and ticks it n times. Every loop gets
// its own copy of base.
func (e *Ensemble) Run(ctx context.Context, cfg Config, base Params, n int, setup func(*Loop, *Params)) ([]Result, error) {
	results := make([]Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			c := cfg
			c.Seed = e.seedStart + int64(i)
			c.Colors = nil

			loop := New(c)
			params := base
			if setup != nil {
				setup(loop, &params)
			}

			var st TickStats
			for t := 0; t < n; t++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				st = loop.Tick(&params, nil)
			}

			results[i] = Result{Seed: c.Seed, Last: st, Particles: loop.Snapshot()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
