package storage

import (
	"testing"

	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/sim"
)

func sampleFrames() []Frame {
	mk := func(t, alt float64, status orbit.Status) Frame {
		return Frame{
			Time: t,
			Bodies: []sim.BodyTelemetry{
				{
					ID:       0,
					Position: orbit.Vec3{X: orbit.EarthRadius + alt},
					Velocity: orbit.Vec3{Y: 7800},
					Altitude: alt,
					Speed:    7800,
					Status:   status,
				},
				{
					ID:       1,
					Position: orbit.Vec3{X: orbit.EarthRadius + 200_000},
					Velocity: orbit.Vec3{Y: 7700},
					Altitude: 200_000,
					Speed:    7700,
					Status:   orbit.StatusOrbiting,
				},
			},
		}
	}
	return []Frame{
		mk(0, 400_000, orbit.StatusOrbiting),
		mk(1, 399_000, orbit.StatusOrbiting),
		mk(2, 51_000, orbit.StatusCrashed),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	metrics := map[string]float64{"perigee_altitude": 51_000}
	runID, err := st.Save("crash", 0.016, 3000, 60, sampleFrames(), metrics)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "crash" {
		t.Errorf("scenario %q", meta.Scenario)
	}
	if meta.Steps != 3 || meta.Bodies != 2 {
		t.Errorf("steps=%d bodies=%d", meta.Steps, meta.Bodies)
	}
	if len(meta.FinalStatuses) != 2 || meta.FinalStatuses[0] != "crashed" {
		t.Errorf("final statuses %v", meta.FinalStatuses)
	}
	if meta.Metrics["perigee_altitude"] != 51_000 {
		t.Errorf("metrics %v", meta.Metrics)
	}
}

func TestLoadFrames(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("leo", 0.016, 3000, 60, sampleFrames(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if len(frames[0].Bodies) != 2 {
		t.Fatalf("expected 2 bodies per frame, got %d", len(frames[0].Bodies))
	}
	if frames[2].Bodies[0].Status != orbit.StatusCrashed {
		t.Errorf("status did not round-trip: %v", frames[2].Bodies[0].Status)
	}
	if got := frames[1].Bodies[0].Altitude; got != 399_000 {
		t.Errorf("altitude did not round-trip: %v", got)
	}
	if got := frames[0].Bodies[1].Velocity.Y; got != 7700 {
		t.Errorf("velocity did not round-trip: %v", got)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save("leo", 0.016, 10, 1, sampleFrames(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("escape", 0.016, 10, 1, sampleFrames(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("runs not sorted newest first")
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected nil error for missing dir, got %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %v", runs)
	}
}
