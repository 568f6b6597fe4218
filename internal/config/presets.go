package config

import (
	"fmt"
	"sort"
)

// Presets override the physics knobs of a base configuration.
var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Gravity = 0.02
		c.PushForce = 2
		c.Size = 4
	},
	"storm": func(c *Config) {
		c.Gravity = 0.15
		c.PushForce = 15
		c.AttractionRadius = 120
		c.Cycle.Step = 25
		c.RecolorLive = true
	},
	"zero-g": func(c *Config) {
		c.Gravity = 0
		c.PushForce = 3
	},
	"heavy": func(c *Config) {
		c.Gravity = 0.2
		c.Size = 12
		c.PushForce = 8
	},
}

// GetPreset returns the default configuration with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

// Apply overlays the named preset onto cfg.
func Apply(cfg *Config, name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	apply(cfg)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
