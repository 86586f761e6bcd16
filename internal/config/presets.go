package config

import (
	"sort"

	"github.com/orbitlab/orbitsim/internal/trail"
)

// Presets are compiled-in scenarios mirroring the classic demonstration
// cases: a stable circular orbit, suborbital crash and decay
// trajectories, an escape, and a vacuum comparison run.
var Presets = map[string]*Config{
	"leo": {
		Dt: 0.016, Duration: 5600, TimeScale: 60,
		Bodies: []BodyConfig{
			{Altitude: 400_000, Speed: 7800},
		},
	},
	"decay": {
		Dt: 0.016, Duration: 20_000, TimeScale: 120,
		Bodies: []BodyConfig{
			{Altitude: 200_000, Speed: 7700},
		},
	},
	"crash": {
		Dt: 0.016, Duration: 3000, TimeScale: 60,
		Bodies: []BodyConfig{
			{Altitude: 300_000, Speed: 5000, FlightPathAngle: 45},
		},
	},
	"escape": {
		Dt: 0.016, Duration: 10_000, TimeScale: 120,
		Bodies: []BodyConfig{
			{Altitude: 400_000, Speed: 12_000, FlightPathAngle: 90},
		},
	},
	"vacuum-pair": {
		// Same low orbit twice, once without air, to compare decay.
		Dt: 0.016, Duration: 20_000, TimeScale: 120,
		Bodies: []BodyConfig{
			{Altitude: 200_000, Speed: 7700},
			{Altitude: 200_000, Speed: 7700, NoAir: true},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil for unknown
// names. Callers may mutate the result freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	if out.Dt == 0 {
		out.Dt = DefaultDt
	}
	if out.TimeScale == 0 {
		out.TimeScale = DefaultTimeScale
	}
	if out.MaxTrailLength == 0 {
		out.MaxTrailLength = trail.DefaultMaxLength
	}
	if out.TrailMinDistance == 0 {
		out.TrailMinDistance = trail.DefaultMinDistance
	}
	return &out
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
