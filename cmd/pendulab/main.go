package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendulab/internal/config"
	"github.com/san-kum/pendulab/internal/ensemble"
	"github.com/san-kum/pendulab/internal/pendulum"
)

var (
	configFile string
	preset     string
	count      int
	variant    string
	workers    int
	fps        int
	verbose    bool

	// run, snapshot
	frames         int
	snapshotFrames int
	// trace, plot, compare
	steps int
	// live
	theme string
	// bench
	sizes []int
	ticks int
	// analyze
	duration     float64
	perturbation float64
	portrait     bool
	poincare     bool
)

var logger = log.New(os.Stderr, "pendulab: ", log.LstdFlags)

// main registers the commands and runs the root command, which opens the
// terminal view when no subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "pendulab",
		Short:         "chaotic double pendulum ensembles",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&count, "count", config.DefaultCount, "number of pendulums")
	pf.StringVar(&variant, "variant", pendulum.Reference.String(), "equations of motion (reference, hamiltonian)")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "goroutines used per tick")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log resizes and frame counters")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the ensemble in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	rootCmd.Flags().AddFlagSet(liveCmd.Flags())

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate the ensemble in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drive the ensemble headless and log frame counters",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to draw (0 runs until interrupted)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write the ensemble after some frames as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 300, "frames to advance before drawing")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "write the trajectory of one pendulum as CSV",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the state components of one pendulum",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick throughput for several ensemble sizes",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{1, 10, 100, 1000, 10000}, "ensemble sizes")
	benchCmd.Flags().IntVar(&ticks, "ticks", 200, "ticks per size")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the specialised stepper with the generic integrators",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	compareCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "estimate the Lyapunov exponent and dominant frequency",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Float64Var(&duration, "time", 20, "simulated seconds")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")
	analyzeCmd.Flags().BoolVar(&portrait, "portrait", false, "draw the theta1/p1 phase portrait")
	analyzeCmd.Flags().BoolVar(&poincare, "poincare", false, "draw the section where theta2 crosses zero")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s count=%-5d variant=%-11s workers=%d\n", name, p.Count, p.Variant, p.Workers)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, snapshotCmd, traceCmd, plotCmd, benchCmd, compareCmd, analyzeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newEnsemble builds a collection sized from cfg and a driver painting on r.
func newEnsemble(cfg *config.Config, r ensemble.Renderer, withLog bool) (*ensemble.Driver, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	layout := ensemble.Layout{Columns: cfg.Layout.Columns, Spacing: cfg.Layout.Spacing}
	coll := ensemble.New(p, layout, cfg.Workers)
	if err := coll.Resize(cfg.Count); err != nil {
		return nil, err
	}

	opts := []ensemble.Option{ensemble.WithFPS(cfg.FPS)}
	if withLog {
		opts = append(opts, ensemble.WithLogger(logger))
	}
	return ensemble.NewDriver(coll, r, opts...), nil
}

func params(cmd *cobra.Command) (pendulum.Params, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return pendulum.Params{}, err
	}
	return cfg.Params()
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
