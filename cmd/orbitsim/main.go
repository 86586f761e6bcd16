package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/orbitlab/orbitsim/internal/config"
	"github.com/orbitlab/orbitsim/internal/metrics"
	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/sim"
	"github.com/orbitlab/orbitsim/internal/storage"
	"github.com/orbitlab/orbitsim/internal/viz"
)

// maxRecordedFrames bounds how many telemetry frames a batch run keeps;
// longer runs are sampled at an even stride.
const maxRecordedFrames = 2000

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	timeScale  float64
	altitude   float64
	speed      float64
	angle      float64
	mass       float64
	noAir      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "Earth-orbit simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store the results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run telemetry to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and telemetry to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")
	cmd.Flags().Float64Var(&timeScale, "timescale", config.DefaultTimeScale, "simulated seconds per wall second")
	cmd.Flags().Float64Var(&altitude, "altitude", orbit.DefaultAltitude, "initial altitude in metres")
	cmd.Flags().Float64Var(&speed, "speed", 0, "initial speed in m/s (0 = circular)")
	cmd.Flags().Float64Var(&angle, "angle", 0, "flight path angle in degrees")
	cmd.Flags().Float64Var(&mass, "mass", orbit.DefaultMass, "body mass in kg")
	cmd.Flags().BoolVar(&noAir, "no-air", false, "disable atmospheric drag")
}

// buildConfig layers preset, config file, and flags, later sources
// overriding earlier ones.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	scenario := "custom"

	if len(args) == 1 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		cfg = preset
		scenario = args[0]
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		scenario = configFile
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("timescale") {
		cfg.TimeScale = timeScale
	}

	flagBody := cmd.Flags().Changed("altitude") || cmd.Flags().Changed("speed") ||
		cmd.Flags().Changed("angle") || cmd.Flags().Changed("mass") || cmd.Flags().Changed("no-air")
	if flagBody {
		cfg.Bodies = []config.BodyConfig{{
			Altitude:        altitude,
			Speed:           speed,
			FlightPathAngle: angle,
			Mass:            mass,
			NoAir:           noAir,
		}}
	}

	return cfg, scenario, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	reg := sim.New(cfg.RegistryConfig())
	cfg.Populate(reg)

	integ := reg.Integrator()
	reg.AddMetric(metrics.NewSpecificEnergy(integ))
	reg.AddMetric(metrics.NewEnergyDrift(integ))
	reg.AddMetric(metrics.NewPerigee())
	reg.AddMetric(metrics.NewApogee())

	steps := int(cfg.Duration / (cfg.Dt * cfg.TimeScale))
	stride := steps/maxRecordedFrames + 1

	fmt.Printf("running %s...\n", scenario)
	start := time.Now()

	var frames []storage.Frame
	for i := 0; i < steps; i++ {
		snap := reg.Tick(cfg.Dt, cfg.TimeScale)
		recorded := i%stride == 0 || i == steps-1
		if recorded {
			frames = append(frames, storage.Frame{Time: reg.Elapsed(), Bodies: snap})
		}
		if allCrashed(snap) {
			if !recorded {
				frames = append(frames, storage.Frame{Time: reg.Elapsed(), Bodies: snap})
			}
			break
		}
	}
	elapsed := time.Since(start)

	runID, err := st.Save(scenario, cfg.Dt, cfg.Duration, cfg.TimeScale, frames, reg.Metrics())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("simulated: %.0f s\n", reg.Elapsed())

	if len(frames) > 0 {
		last := frames[len(frames)-1]
		fmt.Println("\nfinal state:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BODY\tALTITUDE\tSPEED\tSTATUS")
		for _, b := range last.Bodies {
			fmt.Fprintf(w, "%d\t%.1f km\t%.1f m/s\t%s\n", b.ID, b.Altitude/1000, b.Speed, b.Status)
		}
		w.Flush()
	}

	fmt.Println("\nmetrics:")
	for name, val := range reg.Metrics() {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func allCrashed(snap []sim.BodyTelemetry) bool {
	if len(snap) == 0 {
		return false
	}
	for _, b := range snap {
		if b.Status != orbit.StatusCrashed {
			return false
		}
	}
	return true
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg, scenario))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSTATUSES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.FinalStatuses,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscenario: %s\nframes: %d\n\n", meta.ID, meta.Scenario, len(frames))

	for body := 0; body < meta.Bodies; body++ {
		alts := make([]float64, 0, len(frames))
		speeds := make([]float64, 0, len(frames))
		for _, f := range frames {
			if body < len(f.Bodies) {
				alts = append(alts, f.Bodies[body].Altitude/1000)
				speeds = append(speeds, f.Bodies[body].Speed)
			}
		}

		fmt.Println(asciigraph.Plot(alts,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d altitude (km)", body)),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(speeds,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d speed (m/s)", body)),
		))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "body", "px", "py", "pz", "vx", "vy", "vz", "altitude", "speed", "status"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, f := range frames {
		for _, b := range f.Bodies {
			row := []string{
				fmt.Sprintf("%.6f", f.Time),
				fmt.Sprintf("%d", b.ID),
				fmt.Sprintf("%.6f", b.Position.X),
				fmt.Sprintf("%.6f", b.Position.Y),
				fmt.Sprintf("%.6f", b.Position.Z),
				fmt.Sprintf("%.6f", b.Velocity.X),
				fmt.Sprintf("%.6f", b.Velocity.Y),
				fmt.Sprintf("%.6f", b.Velocity.Z),
				fmt.Sprintf("%.6f", b.Altitude),
				fmt.Sprintf("%.6f", b.Speed),
				b.Status.String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Metadata storage.RunMetadata `json:"metadata"`
		Frames   []storage.Frame     `json:"frames"`
	}{meta, frames}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
