package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/config"
	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/experiment"
	"github.com/san-kum/popsim/internal/export"
	"github.com/san-kum/popsim/internal/integrators"
	"github.com/san-kum/popsim/internal/metrics"
	"github.com/san-kum/popsim/internal/sim"
	"github.com/san-kum/popsim/internal/storage"
	"github.com/san-kum/popsim/internal/viz"
)

var (
	growthRate float64
	capacity   float64
	initialPop float64
	maxTime    float64
	dt         float64
	preset     string
	configFile string
	csvPath    string
	every      int
	plot       bool
	verbose    bool
	// Sweep range
	sweepFrom  float64
	sweepTo    float64
	sweepCount int
	workers    int
	sweepDir   string
	// Preset export
	outFile string
	svgFile string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "popsim",
})

// main registers the commands and runs the interactive menu when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "popsim",
		Short: "logistic population growth simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), os.Stdin, os.Stdout)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print the table",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", config.DefaultCSVPath, "CSV output path (empty to skip)")
	runCmd.Flags().IntVar(&every, "every", config.DefaultEvery, "print every Nth sample")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the population curve")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "closed-form analysis without simulating",
		Args:  cobra.NoArgs,
		RunE:  analyzeModel,
	}
	addParamFlags(analyzeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list scenario presets or export one as a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the preset to this YAML file")

	plotCmd := &cobra.Command{
		Use:   "plot [csv]",
		Short: "plot a saved CSV record",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCSV,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the curve to this SVG file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a growth-rate sweep in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first growth rate")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last growth rate")
	sweepCmd.Flags().IntVar(&sweepCount, "n", 10, "number of growth rates")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")
	sweepCmd.Flags().StringVar(&sweepDir, "csv-dir", "", "write one CSV record per growth rate into this directory")

	rootCmd.AddCommand(runCmd, analyzeCmd, presetsCmd, plotCmd, liveCmd, sweepCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&growthRate, "r", config.DefaultGrowthRate, "growth rate")
	cmd.Flags().Float64Var(&capacity, "k", config.DefaultCarryingCapacity, "carrying capacity")
	cmd.Flags().Float64Var(&initialPop, "p0", config.DefaultInitialPopulation, "initial population")
	cmd.Flags().Float64Var(&maxTime, "time", config.DefaultMaxTime, "simulation horizon")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset (bacteria, city, fish)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("r") {
		cfg.GrowthRate = growthRate
	}
	if flags.Changed("k") {
		cfg.CarryingCapacity = capacity
	}
	if flags.Changed("p0") {
		cfg.InitialPopulation = initialPop
	}
	if flags.Changed("time") {
		cfg.MaxTime = maxTime
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("csv") {
		cfg.Output.CSV = csvPath
	}
	if flags.Changed("every") {
		cfg.Output.Every = every
	}
	if flags.Changed("plot") {
		cfg.Output.Plot = plot
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return simulate(cmd.Context(), cfg, os.Stdout)
}

// simulate runs cfg and prints the full report to w.
func simulate(ctx context.Context, cfg *config.Config, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(integrators.NewRK4(), metrics.Defaults(cfg.Params())); err != nil {
		return err
	}

	viz.Header(w, cfg.Params())
	viz.Summary(w, cfg.Params())
	fmt.Fprintln(w)

	report, err := exp.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	viz.Table(w, report.Result, cfg.Output.Every)
	if report.CSVPath != "" {
		fmt.Fprintf(w, "\nsimulation data saved to %s (%d rows)\n", report.CSVPath, report.CSVRows)
	}

	viz.Metrics(w, []string{"peak_growth", "saturation_time", "analytic_error"}, report.Metrics)

	if cfg.Output.Plot {
		fmt.Fprintln(w)
		fmt.Fprintln(w, viz.PlotPopulation(report.Result.Samples))
	}

	viz.Interpretation(w)
	return nil
}

func analyzeModel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	warnings, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	params := cfg.Params()
	viz.Header(os.Stdout, params)
	viz.Summary(os.Stdout, params)

	if t, ok := analysis.SaturationTime(params); ok {
		fmt.Printf("Time to reach 99.9%% of carrying capacity: %.2f time units", t)
		if t > params.MaxTime {
			fmt.Printf(" (beyond t_max = %.2f)", params.MaxTime)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println(viz.PlotRate(params))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("available presets:")
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, name := range config.ListPresets() {
			p := config.Presets[name]
			fmt.Fprintf(tw, "  %s\t%s\tr=%g K=%g P0=%g t_max=%g dt=%g\n",
				name, p.Description, p.GrowthRate, p.CarryingCapacity, p.InitialPopulation, p.MaxTime, p.Dt)
		}
		return tw.Flush()
	}

	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if outFile == "" {
		return config.Encode(os.Stdout, cfg)
	}
	if err := config.Save(outFile, cfg); err != nil {
		return err
	}
	fmt.Printf("preset %s written to %s\n", args[0], outFile)
	return nil
}

func plotCSV(cmd *cobra.Command, args []string) error {
	samples, err := storage.Load(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples in %s", args[0])
	}

	last := samples[len(samples)-1]
	fmt.Println(viz.PlotPopulation(samples))
	fmt.Printf("%d samples, final P = %.2f (%.2f%% of K) at t = %.2f\n",
		len(samples), last.Population, last.PercentOfCapacity, last.Time)

	if svgFile != "" {
		if err := export.WriteSVG(svgFile, samples, export.CapacityOf(samples[0])); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		fmt.Printf("svg written to %s\n", svgFile)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	warnings, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	m := viz.NewLiveModel(cfg.Params())
	defer m.Close()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepCount < 1 {
		return fmt.Errorf("sweep needs at least one growth rate, got %d", sweepCount)
	}

	base := cfg.Params()
	sets := make([]dynamo.Parameters, sweepCount)
	for i := range sets {
		p := base
		p.GrowthRate = sweepFrom
		if sweepCount > 1 {
			p.GrowthRate += (sweepTo - sweepFrom) * float64(i) / float64(sweepCount-1)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("sweep point %d: %w", i, err)
		}
		sets[i] = p
	}

	logger.Debug("sweep started", "points", len(sets), "workers", workers)
	ensemble := sim.NewEnsemble(func() dynamo.Stepper { return integrators.NewRK4() }, workers)
	results, err := ensemble.Run(cmd.Context(), sets)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "r\tstop\tsamples\tfinal t\tfinal P\t% of K\tt(K/2)")
	for _, res := range results {
		final := res.Final()
		half := "-"
		if t, ok := analysis.Analyze(res.Params).HalfCapacityTime(); ok {
			half = fmt.Sprintf("%.2f", t)
		}
		fmt.Fprintf(tw, "%.4f\t%s\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
			res.Params.GrowthRate, res.Reason, len(res.Samples), final.Time, final.Population, final.PercentOfCapacity, half)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if sweepDir != "" {
		paths, err := saveSweep(sweepDir, results)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d records written to %s\n", len(paths), sweepDir)
	}
	return nil
}

// saveSweep writes each result as its own CSV record named after r.
func saveSweep(dir string, results []*sim.Result) ([]string, error) {
	paths := make([]string, 0, len(results))
	for _, res := range results {
		path := filepath.Join(dir, fmt.Sprintf("population_r%.4f.csv", res.Params.GrowthRate))
		if _, err := storage.Save(path, slices.Values(res.Samples)); err != nil {
			return paths, fmt.Errorf("failed to save sweep record: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
