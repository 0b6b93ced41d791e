package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendulab/internal/analysis"
	"github.com/san-kum/pendulab/internal/config"
	"github.com/san-kum/pendulab/internal/ensemble"
	"github.com/san-kum/pendulab/internal/export"
	"github.com/san-kum/pendulab/internal/gui"
	"github.com/san-kum/pendulab/internal/integrators"
	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
	"github.com/san-kum/pendulab/internal/sim"
	"github.com/san-kum/pendulab/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(0, 0)
	drv, err := newEnsemble(cfg, canvas, false)
	if err != nil {
		return err
	}

	m := viz.NewLive(drv, canvas, viz.LiveOptions{MaxCount: config.MaxCount, Theme: theme})
	return viz.RunLive(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	win := gui.New(gui.Options{MaxCount: config.MaxCount})
	drv, err := newEnsemble(cfg, win, verbose)
	if err != nil {
		return err
	}
	win.Bind(drv)
	win.Run()
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	drv, err := newEnsemble(cfg, nil, true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Printf("running %d pendulums (%s) at %d fps", cfg.Count, cfg.Variant, cfg.FPS)
	start := time.Now()
	err = drv.Run(ctx, frames)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	coll := drv.Collection()
	logger.Printf("done: %d steps, simulated %.2fs in %v", coll.Steps(), coll.Time(), time.Since(start).Round(time.Millisecond))
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if snapshotFrames < 1 {
		return fmt.Errorf("frames must be positive, got %d", snapshotFrames)
	}

	svg := export.NewSVG(ensemble.Vec2{})
	drv, err := newEnsemble(cfg, svg, verbose)
	if err != nil {
		return err
	}
	coll := drv.Collection()
	b := ensemble.Bounds(coll.Params(), coll.Layout(), coll.Len())
	svg.Width, svg.Height = b.X, b.Y

	start := time.Now()
	for i := 1; i <= snapshotFrames; i++ {
		drv.Frame(start.Add(time.Duration(i) * time.Second / time.Duration(cfg.FPS)))
	}

	_, err = svg.WriteTo(out(cmd))
	return err
}

func runTrace(cmd *cobra.Command, args []string) error {
	p, err := params(cmd)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out(cmd))
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "theta1", "theta2", "p1", "p2", "energy"}); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 9, 64) }

	s := pendulum.New()
	for i := 0; i <= steps; i++ {
		row := []string{
			strconv.Itoa(i),
			format(float64(i) * pendulum.DT),
			format(s.Theta1), format(s.Theta2),
			format(s.P1), format(s.P2),
			format(pendulum.Energy(p, s)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
		s = pendulum.Step(p, s)
	}

	w.Flush()
	return w.Error()
}

func runPlot(cmd *cobra.Command, args []string) error {
	p, err := params(cmd)
	if err != nil {
		return err
	}
	if steps < 2 {
		return fmt.Errorf("need at least 2 steps, got %d", steps)
	}

	series := make([][]float64, 4)
	for i := range series {
		series[i] = make([]float64, 0, steps)
	}

	s := pendulum.New()
	for i := 0; i < steps; i++ {
		s = pendulum.Step(p, s)
		series[0] = append(series[0], s.Theta1)
		series[1] = append(series[1], s.Theta2)
		series[2] = append(series[2], s.P1)
		series[3] = append(series[3], s.P2)
	}

	captions := []string{"theta1", "theta2", "p1", "p2"}
	for i, data := range series {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s over %.2fs (%s)", captions[i], float64(steps)*pendulum.DT, p.Variant)),
		)
		fmt.Fprintln(out(cmd), graph)
		fmt.Fprintln(out(cmd))
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	if ticks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", ticks)
	}

	fmt.Fprintf(out(cmd), "benchmarking %s with %d workers\n\n", p.Variant, cfg.Workers)
	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PENDULUMS\tTICKS\tTIME\tTICKS/SEC\tSTEPS/SEC")

	layout := ensemble.Layout{Columns: cfg.Layout.Columns, Spacing: cfg.Layout.Spacing}
	for _, n := range sizes {
		coll := ensemble.New(p, layout, cfg.Workers)
		if err := coll.Resize(n); err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < ticks; i++ {
			coll.Tick()
		}
		elapsed := time.Since(start)

		perSec := float64(ticks) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.0f\n",
			n, ticks, elapsed.Round(time.Microsecond), perSec, perSec*float64(n))
	}

	return w.Flush()
}

func runCompare(cmd *cobra.Command, args []string) error {
	p, err := params(cmd)
	if err != nil {
		return err
	}

	sys := pendulum.NewSystem(p)
	scale := pendulum.EnergyScale(p)

	type result struct {
		name    string
		final   pendulum.State
		drift   float64
		elapsed time.Duration
	}
	var results []result

	drift := metrics.NewEnergyDrift(sys, scale)
	start := time.Now()
	s := pendulum.New()
	drift.Observe(s.Vector(), 0)
	for i := 1; i <= steps; i++ {
		s = pendulum.Step(p, s)
		drift.Observe(s.Vector(), float64(i)*pendulum.DT)
	}
	results = append(results, result{"advance", s, drift.Value(), time.Since(start)})

	for _, name := range integrators.Names() {
		integ, err := integrators.New(name)
		if err != nil {
			return err
		}
		runner := sim.New(sys, integ)
		runner.AddMetric(metrics.NewEnergyDrift(sys, scale))

		res, err := runner.Run(cmd.Context(), pendulum.New().Vector(), sim.Config{Dt: pendulum.DT, Steps: steps})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, result{name, pendulum.FromVector(res.Final), res.Metrics["energy_drift"], res.Elapsed})
	}

	fmt.Fprintf(out(cmd), "comparing steppers (%s, dt=%.2f, %d steps)\n\n", p.Variant, pendulum.DT, steps)
	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tTHETA1\tTHETA2\tMAX DRIFT\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2e\t%v\n",
			r.name, r.final.Theta1, r.final.Theta2, r.drift, r.elapsed.Round(time.Microsecond))
	}
	return w.Flush()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := params(cmd)
	if err != nil {
		return err
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}

	sys := pendulum.NewSystem(p)
	integ := integrators.NewRK4()
	x0 := pendulum.New().Vector()

	lambda := analysis.LyapunovExponent(sys, integ, x0, pendulum.DT, duration, perturbation)

	n := int(duration / pendulum.DT)
	series := make([]float64, n)
	s := pendulum.New()
	for i := range series {
		s = pendulum.Step(p, s)
		series[i] = s.Theta1
	}
	freq := analysis.DominantFrequency(series, pendulum.DT)

	fmt.Fprintf(out(cmd), "analysis: %s, %.1fs\n\n", p.Variant, duration)
	fmt.Fprintf(out(cmd), "lyapunov exponent: %.4f 1/s", lambda)
	if lambda > 0 {
		fmt.Fprint(out(cmd), " (chaotic)")
	}
	fmt.Fprintln(out(cmd))
	fmt.Fprintf(out(cmd), "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out(cmd), "period: %.3f s\n", 1/freq)
	}

	ps := analysis.PowerSpectrum(series)
	if len(ps) > 8 {
		fmt.Fprintln(out(cmd))
		fmt.Fprintln(out(cmd), asciigraph.Plot(ps[:len(ps)/8],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (theta1)"),
		))
	}

	theta1 := analysis.Axis{Index: 0, Label: "θ1", Angle: true}
	theta2 := analysis.Axis{Index: 1, Label: "θ2", Angle: true}
	p1 := analysis.Axis{Index: 2, Label: "p1"}
	if portrait {
		tr, err := analysis.PhasePortrait(sys, integ, x0, theta1, p1, pendulum.DT, duration)
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), "\nphase portrait")
		fmt.Fprint(out(cmd), viz.PlotTrace(tr, 60, 20))
	}
	if poincare {
		tr, err := analysis.PoincareSection(sys, integ, x0, theta2, 0, theta1, p1, pendulum.DT, duration)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "\npoincare section (θ2 = 0, %d crossings)\n", len(tr.Points))
		fmt.Fprint(out(cmd), viz.PlotTrace(tr, 60, 20))
	}
	return nil
}
