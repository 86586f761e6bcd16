// Package config defines run configuration: yaml files, compiled-in
// presets, and the mapping from scenario parameters to initial body
// state.
package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/sim"
	"github.com/orbitlab/orbitsim/internal/trail"
)

const (
	DefaultDt        = 0.016
	DefaultDuration  = 5400.0 // about one LEO period
	DefaultTimeScale = 1.0
)

type Config struct {
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	TimeScale float64 `yaml:"time_scale"`

	MaxTrailLength   int     `yaml:"max_trail_length"`
	TrailMinDistance float64 `yaml:"trail_min_distance"`

	Bodies []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes one body in scenario terms: altitude above the
// surface, speed, and flight path angle in degrees from local horizontal
// (0 = tangential, 90 = radially outward). Zero-valued physical
// parameters take the registry defaults.
type BodyConfig struct {
	Altitude        float64 `yaml:"altitude"`
	Speed           float64 `yaml:"speed"`
	FlightPathAngle float64 `yaml:"flight_path_angle"`
	Mass            float64 `yaml:"mass"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
	CrossSection    float64 `yaml:"cross_section"`
	NoAir           bool    `yaml:"no_air"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		TimeScale:        DefaultTimeScale,
		MaxTrailLength:   trail.DefaultMaxLength,
		TrailMinDistance: trail.DefaultMinDistance,
	}
}

// Load reads a yaml config, layering file values over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

// ToSim converts scenario parameters into a registry body config. The
// body starts on the reference axis at the given altitude; the velocity
// lies in the orbital plane, split between the tangential and radial
// directions by the flight path angle. A zero speed requests the default
// circular-orbit velocity.
func (bc BodyConfig) ToSim() sim.BodyConfig {
	out := sim.DefaultBodyConfig()

	if bc.Altitude > 0 {
		out.Position = orbit.Vec3{X: orbit.EarthRadius + bc.Altitude}
	}
	if bc.Speed > 0 {
		angle := bc.FlightPathAngle * math.Pi / 180
		out.Velocity = orbit.Vec3{
			X: bc.Speed * math.Sin(angle),
			Y: bc.Speed * math.Cos(angle),
		}
	} else if bc.Altitude > 0 {
		// Recompute the circular speed for the requested altitude.
		integ := orbit.NewIntegrator()
		out.Velocity = orbit.Vec3{Y: integ.CircularSpeed(orbit.EarthRadius + bc.Altitude)}
	}

	if bc.Mass > 0 {
		out.Mass = bc.Mass
	}
	if bc.DragCoefficient > 0 {
		out.DragCoefficient = bc.DragCoefficient
	}
	if bc.CrossSection > 0 {
		out.CrossSection = bc.CrossSection
	}
	out.AirEnabled = !bc.NoAir

	return out
}

// Populate adds every configured body to the registry, falling back to a
// single default body when the config lists none.
func (c *Config) Populate(r *sim.Registry) {
	if len(c.Bodies) == 0 {
		r.AddBody(sim.DefaultBodyConfig())
		return
	}
	for _, bc := range c.Bodies {
		r.AddBody(bc.ToSim())
	}
}

// RegistryConfig maps the trail settings onto the registry.
func (c *Config) RegistryConfig() sim.Config {
	return sim.Config{
		MaxTrailLength:   c.MaxTrailLength,
		TrailMinDistance: c.TrailMinDistance,
	}
}
