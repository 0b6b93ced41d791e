// Package sim runs a single trajectory of a generic system through an
// integrator, feeding metrics and observers along the way.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/pendulab/internal/dynamo"
)

type Config struct {
	Dt    float64
	Steps int
	// Record keeps every state in Result.States.
	Record bool
	// ValidateState stops the run at the first NaN or Inf state.
	ValidateState bool
}

type Result struct {
	States     []dynamo.State
	Times      []float64
	Final      dynamo.State
	StepsTaken int
	Metrics    map[string]float64
	Elapsed    time.Duration
}

type Observer interface {
	OnStep(x dynamo.State, t float64)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(x dynamo.State, t float64)

func (f ObserverFunc) OnStep(x dynamo.State, t float64) { f(x, t) }

type Simulator struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []Observer
}

func New(sys dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }

// Run integrates cfg.Steps fixed steps from x0. Metrics and observers see
// the initial state and every state after it.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := dynamo.CheckDim(s.sys, x0); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}
	if cfg.Record {
		result.States = make([]dynamo.State, 0, cfg.Steps+1)
		result.Times = make([]float64, 0, cfg.Steps+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	x := x0.Clone()
	t := 0.0
	s.visit(result, cfg, x, t)

	var err error
	for i := 0; i < cfg.Steps; i++ {
		if err = ctx.Err(); err != nil {
			break
		}

		x = s.integrator.Step(s.sys, x, t, cfg.Dt)
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++
		s.visit(result, cfg, x, t)

		if cfg.ValidateState && !x.IsValid() {
			err = fmt.Errorf("%w at step %d (t=%.4f)", dynamo.ErrInvalidState, i+1, t)
			break
		}
	}

	result.Elapsed = time.Since(start)
	result.Final = x
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

func (s *Simulator) visit(result *Result, cfg Config, x dynamo.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
	if cfg.Record {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
