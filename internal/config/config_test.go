package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.TimeScale != 1 {
		t.Errorf("expected time scale 1, got %v", cfg.TimeScale)
	}
	if cfg.MaxTrailLength != 1000 {
		t.Errorf("expected trail cap 1000, got %d", cfg.MaxTrailLength)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("crash")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 1 {
		t.Fatalf("expected 1 body, got %d", len(cfg.Bodies))
	}
	if cfg.Bodies[0].FlightPathAngle != 45 {
		t.Errorf("expected 45 degree flight path angle, got %v", cfg.Bodies[0].FlightPathAngle)
	}
}

func TestGetPresetCopiesBodies(t *testing.T) {
	cfg := GetPreset("leo")
	cfg.Bodies[0].Altitude = 1
	cfg.Bodies = append(cfg.Bodies, BodyConfig{Altitude: 2})

	again := GetPreset("leo")
	if len(again.Bodies) != 1 {
		t.Fatalf("preset body list grew to %d entries", len(again.Bodies))
	}
	if again.Bodies[0].Altitude != 400_000 {
		t.Errorf("preset altitude mutated to %v", again.Bodies[0].Altitude)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestBodyConfigToSim(t *testing.T) {
	bc := BodyConfig{Altitude: 300_000, Speed: 5000, FlightPathAngle: 45, Mass: 500}
	sc := bc.ToSim()

	if got := sc.Position.X; got != orbit.EarthRadius+300_000 {
		t.Errorf("position %v", got)
	}
	want := 5000 * math.Sqrt2 / 2
	if math.Abs(sc.Velocity.X-want) > 1e-6 || math.Abs(sc.Velocity.Y-want) > 1e-6 {
		t.Errorf("velocity %v, expected both components ~%v", sc.Velocity, want)
	}
	if sc.Mass != 500 {
		t.Errorf("mass %v", sc.Mass)
	}
	if !sc.AirEnabled {
		t.Error("air should default to enabled")
	}
}

func TestBodyConfigToSimCircularFallback(t *testing.T) {
	bc := BodyConfig{Altitude: 500_000}
	sc := bc.ToSim()

	integ := orbit.NewIntegrator()
	want := integ.CircularSpeed(orbit.EarthRadius + 500_000)
	if math.Abs(sc.Velocity.Y-want) > 1e-9 {
		t.Errorf("expected circular speed %v, got %v", want, sc.Velocity.Y)
	}
}

func TestPopulate(t *testing.T) {
	cfg := GetPreset("vacuum-pair")
	r := sim.New(cfg.RegistryConfig())
	cfg.Populate(r)

	if r.Len() != 2 {
		t.Fatalf("expected 2 bodies, got %d", r.Len())
	}
	if !r.Body(0).AirEnabled {
		t.Error("first body should have air enabled")
	}
	if r.Body(1).AirEnabled {
		t.Error("second body should have air disabled")
	}
}

func TestPopulateEmptyFallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	r := sim.New(cfg.RegistryConfig())
	cfg.Populate(r)

	if r.Len() != 1 {
		t.Fatalf("expected 1 default body, got %d", r.Len())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	in := GetPreset("escape")
	if err := Save(path, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if out.Duration != in.Duration {
		t.Errorf("duration %v, expected %v", out.Duration, in.Duration)
	}
	if len(out.Bodies) != 1 || out.Bodies[0].Speed != 12_000 {
		t.Errorf("bodies did not round-trip: %+v", out.Bodies)
	}
}
