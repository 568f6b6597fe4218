package sim

import "time"

// Pacer turns elapsed wall time into a count of fixed-interval steps, so a
// frame-driven host can tick at a fixed cadence without sleeping. A backlog
// larger than max steps is dropped rather than replayed.
type Pacer struct {
	interval time.Duration
	max      int
	last     time.Time
	acc      time.Duration
}

func NewPacer(interval time.Duration, max int) *Pacer {
	return &Pacer{interval: interval, max: max}
}

// Due returns how many steps are owed at now. The first call after
// construction or Reset owes exactly one.
func (p *Pacer) Due(now time.Time) int {
	if p.last.IsZero() {
		p.last = now
		return 1
	}

	p.acc += now.Sub(p.last)
	p.last = now

	n := int(p.acc / p.interval)
	p.acc -= time.Duration(n) * p.interval
	if p.max > 0 && n > p.max {
		n = p.max
		p.acc = 0
	}
	return n
}

func (p *Pacer) Reset() {
	p.last = time.Time{}
	p.acc = 0
}

func (p *Pacer) Interval() time.Duration { return p.interval }
