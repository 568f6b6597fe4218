package colorcycle

import (
	"fmt"

	"github.com/san-kum/particlesim/internal/particle"
)

// Ramp walks the channel grid on an ascending pass (low, low+step, ... below
// high) followed by a descending pass (high-step, ... above low-step), red
// outermost and blue innermost, forever. Descending values below zero are
// pinned to zero.
type Ramp struct {
	asc, desc  []uint8
	descending bool
	r, g, b    int
}

func NewRamp(low, high, step int) (*Ramp, error) {
	if step == 0 {
		return nil, ErrZeroStep
	}
	if low < 0 || high > 256 {
		return nil, fmt.Errorf("%w: low=%d high=%d", ErrChannelRange, low, high)
	}
	if step < 0 || low >= high {
		return nil, fmt.Errorf("%w: low=%d high=%d step=%d", ErrEmptyRamp, low, high, step)
	}

	r := &Ramp{}
	for v := low; v < high; v += step {
		r.asc = append(r.asc, uint8(v))
	}
	for v := high - step; v > low-step; v -= step {
		r.desc = append(r.desc, uint8(max(v, 0)))
	}
	return r, nil
}

// Next returns the current colour and advances.
func (r *Ramp) Next() particle.RGB {
	pass := r.asc
	if r.descending {
		pass = r.desc
	}
	c := particle.RGB{R: pass[r.r], G: pass[r.g], B: pass[r.b]}

	r.b++
	if r.b == len(pass) {
		r.b = 0
		r.g++
	}
	if r.g == len(pass) {
		r.g = 0
		r.r++
	}
	if r.r == len(pass) {
		r.r = 0
		r.descending = !r.descending
	}
	return c
}

// Reset rewinds to the first ascending value.
func (r *Ramp) Reset() {
	r.r, r.g, r.b = 0, 0, 0
	r.descending = false
}

// Period is the number of values before the sequence repeats.
func (r *Ramp) Period() int {
	a, d := len(r.asc), len(r.desc)
	return a*a*a + d*d*d
}
