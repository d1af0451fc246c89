package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/SharonMathew4/StellarForge/internal/analysis"
	"github.com/SharonMathew4/StellarForge/internal/compute"
	"github.com/SharonMathew4/StellarForge/internal/config"
	"github.com/SharonMathew4/StellarForge/internal/engine"
	"github.com/SharonMathew4/StellarForge/internal/metrics"
	"github.com/SharonMathew4/StellarForge/internal/storage"
	"github.com/SharonMathew4/StellarForge/internal/tui"
	"github.com/SharonMathew4/StellarForge/internal/universe"
)

var (
	dataDir    string
	bodies     int
	steps      int
	dt         float64
	backend    string
	g          float64
	softening  float64
	theta      float64
	collisions bool
	dist       string
	scale      float64
	seed       int64
	configFile string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stellarforge",
		Short: "gravitational n-body simulation engine",
		Run: func(cmd *cobra.Command, args []string) {
			if err := tui.RunInteractive(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stellarforge", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark backends",
		RunE:  benchBackends,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 50, "steps per measurement")
	benchCmd.Flags().Float64Var(&dt, "dt", 0.001, "timestep")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the tracer orbit",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "interactive preset browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, benchCmd, listCmd, plotCmd, analyzeCmd, exportCmd, liveCmd, watchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&bodies, "bodies", config.DefaultBodies, "number of particles")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "compute backend (single/openmp/cuda/opengl)")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "softening length")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "barnes-hut opening parameter")
	cmd.Flags().BoolVar(&collisions, "collisions", false, "enable inelastic merging")
	cmd.Flags().StringVar(&dist, "dist", config.DefaultDist, "initial distribution")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "spatial scale")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
}

// resolveConfig starts from the preset (or the defaults), replaces it
// wholesale with the config file when one is given, then applies the CLI
// flags that were set explicitly; flags win.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) == 1 {
		p := config.GetPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		cfg = p
		cfg.Preset = args[0]
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("bodies") {
		cfg.Bodies = bodies
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
	}
	if cmd.Flags().Changed("g") {
		cfg.G = g
	}
	if cmd.Flags().Changed("softening") {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("theta") {
		cfg.Theta = theta
	}
	if cmd.Flags().Changed("collisions") {
		cfg.Collisions = collisions
	}
	if cmd.Flags().Changed("dist") {
		cfg.Distribution = dist
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	sys, err := universe.Generate(cfg.Distribution, cfg.Bodies, cfg.Scale, cfg.G, cfg.Seed)
	if err != nil {
		return nil, err
	}

	eng := engine.New()
	if err := eng.Initialize(0, cfg.Backend); err != nil {
		return nil, err
	}
	if err := eng.SetPositions(sys.Positions()); err != nil {
		return nil, err
	}
	if err := eng.SetVelocities(sys.Velocities()); err != nil {
		return nil, err
	}
	if err := eng.SetMasses(sys.Masses()); err != nil {
		return nil, err
	}
	if err := eng.SetTypes(sys.Types()); err != nil {
		return nil, err
	}
	eng.SetGravitationalConstant(float32(cfg.G))
	eng.SetSofteningLength(float32(cfg.Softening))
	eng.SetTheta(float32(cfg.Theta))
	eng.EnableCollisions(cfg.Collisions)
	return eng, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	// Energy is an O(N²) diagnostic; sample it sparsely on big runs.
	sampleEvery := cfg.Steps / 500
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	fmt.Printf("running %d bodies for %d steps on %s...\n", eng.ParticleCount(), cfg.Steps, cfg.Backend)
	start := time.Now()

	series := make([]storage.Sample, 0, cfg.Steps/sampleEvery+1)
	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		eng.Step(float32(cfg.Dt))
		t += cfg.Dt

		if i%sampleEvery == 0 {
			series = append(series, sample(eng, cfg, t))
		}
	}

	elapsed := time.Since(start)

	last := sample(eng, cfg, t)
	series = append(series, last)

	meta := storage.RunMetadata{
		Preset:     cfg.Preset,
		Bodies:     cfg.Bodies,
		Steps:      cfg.Steps,
		Dt:         cfg.Dt,
		Backend:    cfg.Backend,
		Theta:      cfg.Theta,
		Softening:  cfg.Softening,
		Collisions: cfg.Collisions,
		Seed:       cfg.Seed,
		Metrics: map[string]float64{
			"final_energy":  last.Energy,
			"final_bodies":  float64(last.Bodies),
			"momentum_norm": math.Sqrt(last.Px*last.Px + last.Py*last.Py + last.Pz*last.Pz),
			"energy_drift":  energyDrift(series),
			"avg_step_ms":   elapsed.Seconds() * 1000 / float64(cfg.Steps),
			"last_step_ms":  eng.LastStepTimeMS(),
		},
	}

	runID, err := st.Save(meta, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final bodies: %d\n", last.Bodies)
	fmt.Println("\nmetrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func sample(eng *engine.Engine, cfg *config.Config, t float64) storage.Sample {
	sys := eng.System()
	px, py, pz := metrics.Momentum(sys)

	tracerX := 0.0
	if sys.Len() > 1 {
		tracerX = float64(sys.Pos[sys.Len()-1][0])
	}

	return storage.Sample{
		Time:    t,
		Energy:  metrics.TotalEnergy(sys, float32(cfg.G), float32(cfg.Softening)),
		Px:      px,
		Py:      py,
		Pz:      pz,
		Bodies:  sys.Len(),
		StepMS:  eng.LastStepTimeMS(),
		TracerX: tracerX,
	}
}

func energyDrift(series []storage.Sample) float64 {
	if len(series) == 0 || series[0].Energy == 0 {
		return 0
	}
	first := series[0].Energy
	last := series[len(series)-1].Energy
	return math.Abs(last-first) / math.Abs(first)
}

func benchBackends(cmd *cobra.Command, args []string) error {
	sizes := []int{128, 512, 2048}
	tags := []string{compute.TagSingle, compute.TagOpenMP}

	fmt.Println("benchmarking backends")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tBACKEND\tSTEPS\tAVG MS/STEP\tSTEPS/SEC")

	for _, n := range sizes {
		for _, tag := range tags {
			cfg := config.DefaultConfig()
			cfg.Bodies = n
			cfg.Backend = tag
			cfg.Seed = 42

			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < steps; i++ {
				eng.Step(float32(dt))
			}
			elapsed := time.Since(start)

			avgMS := elapsed.Seconds() * 1000 / float64(steps)
			fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\t%.0f\n",
				n, tag, steps, avgMS, float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tSTEPS\tDT\tBACKEND")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Dt,
			run.Backend,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d  backend: %s\n", meta.Bodies, meta.Backend)
	fmt.Printf("samples: %d\n\n", len(series))

	energy := make([]float64, len(series))
	momentum := make([]float64, len(series))
	stepMS := make([]float64, len(series))
	for i, row := range series {
		energy[i] = row.Energy
		momentum[i] = math.Sqrt(row.Px*row.Px + row.Py*row.Py + row.Pz*row.Pz)
		stepMS[i] = row.StepMS
	}

	for _, p := range []struct {
		data    []float64
		caption string
	}{
		{energy, "total energy"},
		{momentum, "momentum |p|"},
		{stepMS, "step time (ms)"},
	} {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	data := make([]float64, len(series))
	for i, row := range series {
		data[i] = row.TracerX
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4+1]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (tracer x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	sampleDt := series[1].Time - series[0].Time
	period := analysis.DominantPeriod(data, sampleDt)
	if period > 0 {
		fmt.Printf("dominant period: %.3f\n", period)
		fmt.Printf("frequency: %.4f\n", 1/period)
	} else {
		fmt.Println("no dominant frequency found")
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	r := tui.NewLiveRenderer(cfg.Scale*1.2, frameRate)
	r.Start()
	defer r.Stop()

	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		eng.Step(float32(cfg.Dt))
		t += cfg.Dt
		r.OnStep(eng.System(), t, eng.LastStepTimeMS())
	}

	return nil
}
