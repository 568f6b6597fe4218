// Package automation replays scripted input against a control surface so
// interactive sessions can be reproduced headlessly.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlesim/internal/control"
	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

var ErrInvalidStep = errors.New("automation: invalid step")

const (
	ActionTick    = "tick"
	ActionPress   = "press"
	ActionMove    = "move"
	ActionRelease = "release"
	ActionLeave   = "leave"
	ActionSpawn   = "spawn"
	ActionSet     = "set"
	ActionColor   = "color"
	ActionCycle   = "cycle"
	ActionClear   = "clear"
	ActionResize  = "resize"
)

// Scenario is a named list of input steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Steps       []Step `yaml:"steps"`
}

// Step is one scripted input. Which fields matter depends on Action.
type Step struct {
	Action string  `yaml:"action"`
	Ticks  int     `yaml:"ticks"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Count  int     `yaml:"count"`
	Param  string  `yaml:"param"`
	Value  float64 `yaml:"value"`
	Color  string  `yaml:"color"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadScenario loads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Action {
	case ActionTick:
		if st.Ticks <= 0 {
			return fmt.Errorf("%w: tick needs ticks > 0", ErrInvalidStep)
		}
	case ActionSpawn:
		if st.Count <= 0 {
			return fmt.Errorf("%w: spawn needs count > 0", ErrInvalidStep)
		}
	case ActionSet:
		if _, ok := control.Ranges[st.Param]; !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidStep, control.ErrUnknownParam, st.Param)
		}
	case ActionColor:
		if _, err := particle.ParseHex(st.Color); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidStep, err)
		}
	case ActionResize:
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("%w: resize needs a positive area", ErrInvalidStep)
		}
	case ActionPress, ActionMove, ActionRelease, ActionLeave, ActionCycle, ActionClear:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidStep, st.Action)
	}
	return nil
}

// Result summarises a replayed scenario.
type Result struct {
	Ticks int
	Last  sim.TickStats
}

// Run replays scenario against surface. Ticks render into r, which may be
// nil. Cancellation is checked between ticks.
func Run(ctx context.Context, scenario *Scenario, surface *control.Surface, r sim.Renderer) (Result, error) {
	var res Result

	for i, step := range scenario.Steps {
		if err := step.validate(); err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Debug("scenario step", "n", i+1, "action", step.Action)

		switch step.Action {
		case ActionTick:
			for t := 0; t < step.Ticks; t++ {
				if err := ctx.Err(); err != nil {
					return res, err
				}
				// held-button spawns land once per tick in scripts
				surface.SpawnOnce()
				res.Last = surface.Tick(r)
				res.Ticks++
			}
		case ActionPress:
			surface.PointerDown(step.X, step.Y)
		case ActionMove:
			surface.PointerMove(step.X, step.Y)
		case ActionRelease:
			surface.PointerUp()
		case ActionLeave:
			surface.PointerLeave()
		case ActionSpawn:
			held := surface.Spawning()
			surface.PointerDown(step.X, step.Y)
			for n := 1; n < step.Count; n++ {
				surface.SpawnOnce()
			}
			if !held {
				surface.PointerUp()
			}
		case ActionSet:
			if err := surface.SetParam(step.Param, step.Value); err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
		case ActionColor:
			surface.SetColor(particle.MustHex(step.Color))
		case ActionCycle:
			surface.ToggleCycle()
		case ActionClear:
			surface.Clear()
		case ActionResize:
			surface.Resize(step.Width, step.Height)
		}
	}

	return res, nil
}
