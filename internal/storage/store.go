// Package storage persists completed runs under a data directory: one
// subdirectory per run holding metadata.json and a telemetry CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Frame is one recorded tick: simulated time plus the telemetry snapshot
// of every body.
type Frame struct {
	Time   float64
	Bodies []sim.BodyTelemetry
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Timestamp     time.Time          `json:"timestamp"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	TimeScale     float64            `json:"time_scale"`
	Steps         int                `json:"steps"`
	Bodies        int                `json:"bodies"`
	FinalStatuses []string           `json:"final_statuses"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns the run id.
func (s *Store) Save(scenario string, dt, duration, timeScale float64, frames []Frame, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bodies := 0
	var finalStatuses []string
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		bodies = len(last.Bodies)
		for _, b := range last.Bodies {
			finalStatuses = append(finalStatuses, b.Status.String())
		}
	}

	meta := RunMetadata{
		ID:            runID,
		Scenario:      scenario,
		Timestamp:     time.Now(),
		Dt:            dt,
		Duration:      duration,
		TimeScale:     timeScale,
		Steps:         len(frames),
		Bodies:        bodies,
		FinalStatuses: finalStatuses,
		Metrics:       metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "telemetry.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader()); err != nil {
		return "", err
	}
	for _, frame := range frames {
		for _, b := range frame.Bodies {
			if err := w.Write(csvRow(frame.Time, b)); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func csvHeader() []string {
	return []string{"time", "body", "px", "py", "pz", "vx", "vy", "vz", "altitude", "speed", "status"}
}

func csvRow(t float64, b sim.BodyTelemetry) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		f(t),
		strconv.Itoa(b.ID),
		f(b.Position.X), f(b.Position.Y), f(b.Position.Z),
		f(b.Velocity.X), f(b.Velocity.Y), f(b.Velocity.Z),
		f(b.Altitude),
		f(b.Speed),
		b.Status.String(),
	}
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads metadata for one run.
func (s *Store) Load(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

// LoadFrames rebuilds the recorded telemetry from the run's CSV.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "telemetry.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, nil
	}

	var frames []Frame
	for _, row := range rows[1:] {
		if len(row) != 11 {
			return nil, fmt.Errorf("storage: malformed telemetry row with %d columns", len(row))
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, err
		}
		id, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, err
		}

		vals := make([]float64, 8)
		for i := range vals {
			v, err := strconv.ParseFloat(row[2+i], 64)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}

		tm := sim.BodyTelemetry{
			ID:       id,
			Position: orbit.Vec3{X: vals[0], Y: vals[1], Z: vals[2]},
			Velocity: orbit.Vec3{X: vals[3], Y: vals[4], Z: vals[5]},
			Altitude: vals[6],
			Speed:    vals[7],
			Status:   parseStatus(row[10]),
		}

		if len(frames) == 0 || frames[len(frames)-1].Time != t {
			frames = append(frames, Frame{Time: t})
		}
		last := &frames[len(frames)-1]
		last.Bodies = append(last.Bodies, tm)
	}

	return frames, nil
}

func parseStatus(s string) orbit.Status {
	switch s {
	case "escaping":
		return orbit.StatusEscaping
	case "crashed":
		return orbit.StatusCrashed
	default:
		return orbit.StatusOrbiting
	}
}
