package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlesim/internal/colorcycle"
	"github.com/san-kum/particlesim/internal/control"
	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

const (
	DefaultWidth            = 800.0
	DefaultHeight           = 600.0
	DefaultTickInterval     = 10 * time.Millisecond
	DefaultSpawnInterval    = time.Millisecond
	DefaultMaxSpawnBurst    = 16
	DefaultGravity          = 0.05
	DefaultSize             = 5.0
	DefaultPushForce        = 5.0
	DefaultAttractionRadius = 50.0
	DefaultColor            = "#ffffff"
	DefaultBackground       = "#000000"
	DefaultTheme            = "cyberpunk"
)

var (
	ErrInvalid       = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Width            float64       `yaml:"width"`
	Height           float64       `yaml:"height"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	SpawnInterval    time.Duration `yaml:"spawn_interval"`
	MaxSpawnBurst    int           `yaml:"max_spawn_burst"`
	Seed             int64         `yaml:"seed"`
	Gravity          float64       `yaml:"gravity"`
	Size             float64       `yaml:"size"`
	PushForce        float64       `yaml:"push_force"`
	AttractionRadius float64       `yaml:"attraction_radius"`
	Color            string        `yaml:"color"`
	Background       string        `yaml:"background"`
	Cycle            CycleConfig   `yaml:"cycle"`
	RecolorLive      bool          `yaml:"recolor_live"`
	Theme            string        `yaml:"theme"`
}

type CycleConfig struct {
	Low      int           `yaml:"low"`
	High     int           `yaml:"high"`
	Step     int           `yaml:"step"`
	Interval time.Duration `yaml:"interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		TickInterval:     DefaultTickInterval,
		SpawnInterval:    DefaultSpawnInterval,
		MaxSpawnBurst:    DefaultMaxSpawnBurst,
		Gravity:          DefaultGravity,
		Size:             DefaultSize,
		PushForce:        DefaultPushForce,
		AttractionRadius: DefaultAttractionRadius,
		Color:            DefaultColor,
		Background:       DefaultBackground,
		Cycle: CycleConfig{
			Low:      0,
			High:     255,
			Step:     10,
			Interval: colorcycle.DefaultInterval,
		},
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field that cannot drive a simulation.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: area %vx%v must be positive", ErrInvalid, c.Width, c.Height)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalid)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn_interval must be positive", ErrInvalid)
	case c.AttractionRadius < 0:
		return fmt.Errorf("%w: attraction_radius must not be negative", ErrInvalid)
	case c.Cycle.Interval <= 0:
		return fmt.Errorf("%w: cycle interval must be positive", ErrInvalid)
	}
	for name, v := range map[string]float64{
		control.ParamGravity: c.Gravity,
		control.ParamSize:    c.Size,
		control.ParamPush:    c.PushForce,
	} {
		if r := control.Ranges[name]; v < r.Min || v > r.Max {
			return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalid, name, v, r.Min, r.Max)
		}
	}
	if _, err := particle.ParseHex(c.Color); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := particle.ParseHex(c.Background); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := colorcycle.NewRamp(c.Cycle.Low, c.Cycle.High, c.Cycle.Step); err != nil {
		return fmt.Errorf("%w: cycle: %w", ErrInvalid, err)
	}
	return nil
}

// Params builds the starting simulation parameters. Call Validate first:
// the loop trusts gravity, size and push to lie in control.Ranges.
// Unparsable colours fall back to the defaults.
func (c *Config) Params() sim.Params {
	color, err := particle.ParseHex(c.Color)
	if err != nil {
		color = particle.White
	}
	return sim.Params{
		Gravity:          c.Gravity,
		Size:             c.Size,
		PushForce:        c.PushForce,
		AttractionRadius: c.AttractionRadius,
		Color:            color,
		Width:            c.Width,
		Height:           c.Height,
	}
}

func (c *Config) BackgroundColor() particle.RGB {
	bg, err := particle.ParseHex(c.Background)
	if err != nil {
		return particle.Black
	}
	return bg
}

// SimConfig is the loop configuration; colors is the cycle source, if any.
func (c *Config) SimConfig(colors sim.ColorSource) sim.Config {
	return sim.Config{
		Seed:        c.Seed,
		RecolorLive: c.RecolorLive,
		Colors:      colors,
	}
}

func (c *Config) NewCycler() (*colorcycle.Cycler, error) {
	return colorcycle.NewCycler(c.Cycle.Low, c.Cycle.High, c.Cycle.Step, c.Cycle.Interval)
}
