package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/export"
	"github.com/san-kum/dropsim/internal/fluid"
	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/shape"
	"github.com/san-kum/dropsim/internal/shoot"
	"github.com/san-kum/dropsim/internal/storage"
	"github.com/san-kum/dropsim/internal/sweep"
	"github.com/san-kum/dropsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	// solve parameters
	angleDeg    float64
	targetKind  string
	targetValue float64
	maxIter     int
	residualTol float64
	odeTol      float64
	guessMM     float64
	// fluid overrides
	tension   float64
	rhoLiquid float64
	rhoVapour float64
	gravity   float64
	// trace parameters
	bond       float64
	tolman     float64
	apexMM     float64
	stopHeight float64
	stopLength float64
	// sweep grid
	r0From   float64
	r0Step   float64
	r0To     float64
	caFrom   float64
	caStep   float64
	caTo     float64
	workers  int
	outFile  string
	svgWidth int
	svgDots  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dropsim",
		Short: "axisymmetric droplet shape solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dropsim", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve [fluid]",
		Short: "solve a drop shape for a target observable",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	solveCmd.Flags().Float64Var(&angleDeg, "angle", 90.0, "contact angle (degrees)")
	solveCmd.Flags().StringVar(&targetKind, "target", "volume", "target kind (volume, height, contact_radius)")
	solveCmd.Flags().Float64Var(&targetValue, "value", 2e-9, "target value (SI units)")
	solveCmd.Flags().IntVar(&maxIter, "max-iter", 0, "solver iteration budget (0 = default)")
	solveCmd.Flags().Float64Var(&residualTol, "tol", 0, "residual tolerance (0 = default)")
	solveCmd.Flags().Float64Var(&odeTol, "ode-tol", 0, "integration tolerance (0 = default)")
	solveCmd.Flags().Float64Var(&guessMM, "guess", 0, "initial apex radius guess (mm, 0 = capillary length)")
	solveCmd.Flags().Float64Var(&tension, "tension", 0, "surface tension override (N/m)")
	solveCmd.Flags().Float64Var(&rhoLiquid, "rho-liquid", 0, "liquid density override (kg/m^3)")
	solveCmd.Flags().Float64Var(&rhoVapour, "rho-vapour", 0, "vapour density override (kg/m^3)")
	solveCmd.Flags().Float64Var(&gravity, "gravity", 0, "gravity override (m/s^2)")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace a single dimensionless profile",
		RunE:  runTrace,
	}
	traceCmd.Flags().Float64Var(&bond, "bond", 0.5, "Bond number")
	traceCmd.Flags().Float64Var(&tolman, "tolman", 0, "Tolman ratio delta/R0")
	traceCmd.Flags().Float64Var(&angleDeg, "angle", 180.0, "contact angle to trace to (degrees)")
	traceCmd.Flags().Float64Var(&stopHeight, "height", 0, "stop at dimensionless depth instead of contact angle")
	traceCmd.Flags().Float64Var(&stopLength, "length", 0, "stop at dimensionless arclength instead of contact angle")

	sweepCmd := &cobra.Command{
		Use:   "sweep [fluid]",
		Short: "sweep apex radius and contact angle, emit CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&r0From, "r0-from", 0.2, "first apex radius (mm)")
	sweepCmd.Flags().Float64Var(&r0Step, "r0-step", 0.2, "apex radius step (mm)")
	sweepCmd.Flags().Float64Var(&r0To, "r0-to", 3.0, "last apex radius (mm)")
	sweepCmd.Flags().Float64Var(&caFrom, "ca-from", 30.0, "first contact angle (degrees)")
	sweepCmd.Flags().Float64Var(&caStep, "ca-step", 30.0, "contact angle step (degrees)")
	sweepCmd.Flags().Float64Var(&caTo, "ca-to", 150.0, "last contact angle (degrees)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")
	sweepCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run profile to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render run profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&svgWidth, "width", 480, "image width (px)")
	svgCmd.Flags().BoolVar(&svgDots, "dots", false, "render as braille dots instead of an outline")
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a profile trace marching from the apex",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&bond, "bond", 0.5, "Bond number")
	liveCmd.Flags().Float64Var(&apexMM, "apex", 1.0, "apex radius (mm)")
	liveCmd.Flags().Float64Var(&angleDeg, "angle", 180.0, "contact angle (degrees)")

	fluidsCmd := &cobra.Command{
		Use:   "fluids",
		Short: "list built-in fluids",
		RunE:  listFluids,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, traceCmd, sweepCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, svgCmd, liveCmd, fluidsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves preset, then config file, then CLI flags, each
// layer overriding the previous one.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Fluid = args[0]
	}
	if cmd.Flags().Changed("angle") {
		cfg.ContactAngleDeg = angleDeg
	}
	if cmd.Flags().Changed("target") {
		cfg.Target.Kind = targetKind
	}
	if cmd.Flags().Changed("value") {
		cfg.Target.Value = targetValue
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIter
	}
	if cmd.Flags().Changed("tol") {
		cfg.Solver.ResidualTol = residualTol
	}
	if cmd.Flags().Changed("ode-tol") {
		cfg.Solver.ODETolerance = odeTol
	}
	if cmd.Flags().Changed("guess") {
		cfg.Solver.InitialGuess = guessMM * 1e-3
	}
	if cmd.Flags().Changed("tension") {
		cfg.Physical.SurfaceTension = tension
	}
	if cmd.Flags().Changed("rho-liquid") {
		cfg.Physical.DensityLiquid = rhoLiquid
	}
	if cmd.Flags().Changed("rho-vapour") {
		cfg.Physical.DensityVapour = rhoVapour
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Physical.Gravity = gravity
	}

	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	params, err := cfg.GetFluid()
	if err != nil {
		return err
	}
	target, err := cfg.GetTarget()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	solver := shoot.New(cfg.GetSolverConfig())

	fmt.Printf("solving %s drop, %s target...\n", cfg.Fluid, target.Name())
	start := time.Now()

	sol, err := solver.Solve(context.Background(), params, cfg.ContactAngle(), target)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Fluid, cfg.Target.Kind, cfg.Target.Value, sol)
	if err != nil {
		return err
	}

	fmt.Printf("converged in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(viz.Summary(sol))
	fmt.Println(viz.RenderDrop(sol.Profile, 60, 16))

	fmt.Println("trace metrics:")
	for name, val := range sol.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	sys := laplace.NewYoungLaplace(bond)
	sys.Tolman = tolman

	tracer := laplace.NewTracer(integrators.NewRK45())
	stop := laplace.ContactAngleReached(angleDeg * math.Pi / 180)
	switch {
	case cmd.Flags().Changed("height"):
		stop = laplace.HeightReached(stopHeight)
	case cmd.Flags().Changed("length"):
		stop = laplace.ArclengthReached(stopLength)
	}

	prof, err := tracer.Trace(context.Background(), sys, stop, laplace.DefaultTraceConfig())
	if err != nil {
		return err
	}

	fmt.Printf("bond: %g  tolman: %g  samples: %d\n", bond, tolman, len(prof))
	last := prof[len(prof)-1]
	fmt.Printf("contact radius: %.6f  depth: %.6f  arclength: %.6f\n", last.R, last.Z, last.S)
	fmt.Printf("dimensionless volume: %.6f\n\n", shape.Volume(prof))

	fmt.Println(viz.RenderDrop(prof, 60, 16))

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	params, err := cfg.GetFluid()
	if err != nil {
		return err
	}

	radiiMM := cfg.Sweep.ApexRadiusMM
	anglesDeg := cfg.Sweep.ContactDeg
	if cmd.Flags().Changed("r0-from") || radiiMM.From == 0 {
		radiiMM = config.Range{From: r0From, Step: r0Step, To: r0To}
	}
	if cmd.Flags().Changed("ca-from") || anglesDeg.From == 0 {
		anglesDeg = config.Range{From: caFrom, Step: caStep, To: caTo}
	}
	if cmd.Flags().Changed("workers") {
		cfg.Sweep.Workers = workers
	}

	radii := radiiMM.Values()
	angles := anglesDeg.Values()
	for i := range radii {
		radii[i] *= 1e-3
	}
	for i := range angles {
		angles[i] *= math.Pi / 180
	}

	runner := sweep.New(cfg.Sweep.Workers)

	fmt.Fprintf(os.Stderr, "sweeping %d x %d grid...\n", len(radii), len(angles))
	start := time.Now()

	points, err := runner.Run(context.Background(), params, radii, angles)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "completed in %v\n", time.Since(start))

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return sweep.WriteCSV(out, points)
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
	fmt.Fprintln(w, "ID\tFLUID\tTIME\tTARGET\tANGLE\tAPEX\tBOND\tVOLUME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s=%.3g\t%.1f°\t%.3f mm\t%.4f\t%.3f µL\n",
			run.ID,
			run.Fluid,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TargetKind,
			run.TargetValue,
			run.ContactAngleDeg,
			run.ApexRadius*1e3,
			run.Bond,
			run.Volume*1e9,
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
	prof, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(prof) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("fluid: %s\n", meta.Fluid)
	fmt.Printf("bond: %.4f  apex: %.4f mm  volume: %.4f µL\n\n",
		meta.Bond, meta.ApexRadius*1e3, meta.Volume*1e9)

	fmt.Println(viz.RenderDrop(prof, 60, 16))
	fmt.Println(viz.ProfilePlot(prof, 70, 10))

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

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	prof, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}
	if len(prof) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"s", "r", "z", "phi"}); err != nil {
		return err
	}
	for _, p := range prof {
		row := []string{
			strconv.FormatFloat(p.S, 'g', 10, 64),
			strconv.FormatFloat(p.R, 'g', 10, 64),
			strconv.FormatFloat(p.Z, 'g', 10, 64),
			strconv.FormatFloat(p.Phi, 'g', 10, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	prof, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	var svg string
	if svgDots {
		canvas := viz.NewCanvas(60, 16)
		viz.DrawDrop(canvas, prof)
		svg = export.CanvasToSVG(canvas, float64(svgWidth)/120.0)
	} else {
		svg = export.ProfileToSVG(prof, svgWidth, svgWidth*3/4, "#00ccff")
	}
	if svg == "" {
		return fmt.Errorf("profile too short to render")
	}

	if outFile != "" {
		return os.WriteFile(outFile, []byte(svg), 0644)
	}
	fmt.Println(svg)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	m := viz.NewLiveModel(bond, apexMM*1e-3, angleDeg*math.Pi/180)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listFluids(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTENSION\tRHO_L\tRHO_V\tCAP_LENGTH")

	for _, name := range fluid.Names() {
		p, err := fluid.ByName(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.4f N/m\t%.1f kg/m³\t%.2f kg/m³\t%.3f mm\n",
			name, p.SurfaceTension, p.DensityLiquid, p.DensityVapour, p.CapillaryLength()*1e3)
	}

	return w.Flush()
}
