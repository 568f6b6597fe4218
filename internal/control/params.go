package control

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknownParam = errors.New("control: unknown parameter")

// Range bounds an adjustable parameter. Step is the increment used by
// Adjust.
type Range struct {
	Min, Max, Step float64
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

const (
	ParamGravity = "gravity"
	ParamSize    = "size"
	ParamPush    = "push"
)

var Ranges = map[string]Range{
	ParamGravity: {Min: 0, Max: 0.2, Step: 0.01},
	ParamSize:    {Min: 1, Max: 20, Step: 1},
	ParamPush:    {Min: 0, Max: 20, Step: 0.1},
}

// ParamNames returns the adjustable parameters in display order.
func ParamNames() []string {
	names := make([]string, 0, len(Ranges))
	for k := range Ranges {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *Surface) GetParams() map[string]float64 {
	return map[string]float64{
		ParamGravity: s.params.Gravity,
		ParamSize:    s.params.Size,
		ParamPush:    s.params.PushForce,
	}
}

// SetParam clamps value into the parameter's range and applies it.
func (s *Surface) SetParam(name string, value float64) error {
	r, ok := Ranges[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	v := r.Clamp(value)
	switch name {
	case ParamGravity:
		s.params.Gravity = v
	case ParamSize:
		s.params.Size = v
	case ParamPush:
		s.params.PushForce = v
	}
	return nil
}

// Adjust moves a parameter by steps increments and returns the new value.
func (s *Surface) Adjust(name string, steps int) (float64, error) {
	r, ok := Ranges[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	cur := s.GetParams()[name]
	// round to the step grid so repeated float additions do not drift
	next := math.Round((cur+float64(steps)*r.Step)/r.Step) * r.Step
	if err := s.SetParam(name, next); err != nil {
		return 0, err
	}
	return s.GetParams()[name], nil
}
