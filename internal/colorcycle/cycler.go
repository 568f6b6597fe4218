package colorcycle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/particlesim/internal/particle"
)

// DefaultInterval is the wall-clock time between published values.
const DefaultInterval = 50 * time.Millisecond

// Cycler publishes Ramp values from a background goroutine. Start always
// begins a fresh ramp; Stop signals the goroutine and returns at once. The
// last published value stays readable after Stop.
type Cycler struct {
	low, high, step int
	interval        time.Duration

	slot atomic.Pointer[particle.RGB]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCycler(low, high, step int, interval time.Duration) (*Cycler, error) {
	if _, err := NewRamp(low, high, step); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Cycler{low: low, high: high, step: step, interval: interval}, nil
}

// Start launches the background task unless one is already running.
func (c *Cycler) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return
	}

	ramp, _ := NewRamp(c.low, c.high, c.step)
	ctx, cancel := context.WithCancel(ctx)
	c.gen++
	c.cancel = cancel
	c.done = make(chan struct{})

	log.Debug("color cycle started", "low", c.low, "high", c.high, "step", c.step, "interval", c.interval)
	go c.run(ctx, ramp, c.gen, c.done)
}

// Stop cancels the running task without waiting for it.
func (c *Cycler) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	c.gen++
	log.Debug("color cycle stopped")
}

// Toggle starts a stopped cycler or stops a running one and reports whether
// it is now running.
func (c *Cycler) Toggle(ctx context.Context) bool {
	if c.Running() {
		c.Stop()
		return false
	}
	c.Start(ctx)
	return true
}

func (c *Cycler) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Done is closed when the most recently started task exits. It is nil
// before the first Start.
func (c *Cycler) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Latest returns the last published colour, if any.
func (c *Cycler) Latest() (particle.RGB, bool) {
	v := c.slot.Load()
	if v == nil {
		return particle.RGB{}, false
	}
	return *v, true
}

func (c *Cycler) run(ctx context.Context, ramp *Ramp, gen uint64, done chan struct{}) {
	defer close(done)
	defer c.finish(gen)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		v := ramp.Next()
		if !c.publish(gen, v) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// finish clears the running state when the task exits on its own, e.g. on
// parent context cancellation.
func (c *Cycler) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// publish stores v if gen is still the current generation.
func (c *Cycler) publish(gen uint64, v particle.RGB) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.slot.Store(&v)
	return true
}
