// Package experiment orchestrates simulation runs: stepping the system,
// sampling observables at a fixed cadence and feeding them to metrics.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/argonmd/internal/config"
	"github.com/san-kum/argonmd/internal/md"
	"github.com/san-kum/argonmd/internal/metrics"
	"github.com/san-kum/argonmd/internal/rng"
)

// Result collects the sampled time series and final metric values of a run.
type Result struct {
	Samples    []metrics.Sample
	Metrics    map[string]float64
	StepsTaken int
}

// Experiment drives one system through a configured number of steps.
type Experiment struct {
	cfg     *config.Config
	sys     *md.System
	metrics []metrics.Metric

	// Progress, when set, is called after every completed step.
	Progress func(step, total int)
}

// New builds the system described by cfg. A zero seed is replaced with the
// current time.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ensemble, err := md.ParseEnsemble(cfg.Ensemble)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sys, err := md.NewSystem(md.Config{
		Cells:       cfg.Cells,
		Scale:       cfg.Scale,
		Temperature: cfg.Temperature,
		Ensemble:    ensemble,
		Replicas:    cfg.Replicas,
		Workers:     cfg.Workers,
	}, rng.NewUniform(seed))
	if err != nil {
		return nil, err
	}

	return &Experiment{cfg: cfg, sys: sys}, nil
}

// System exposes the underlying system, e.g. for post-run analysis.
func (e *Experiment) System() *md.System { return e.sys }

func (e *Experiment) AddMetric(m metrics.Metric) {
	e.metrics = append(e.metrics, m)
}

// Sample reads the current observables off the system.
func (e *Experiment) Sample() metrics.Sample {
	return metrics.Sample{
		Time:        e.sys.ElapsedPicoseconds(),
		Temperature: e.sys.Temperature(),
		Kinetic:     e.sys.KineticEnergy(),
		Potential:   e.sys.PotentialEnergy(),
		Total:       e.sys.TotalEnergy(),
		Pressure:    e.sys.Pressure(),
		Momentum:    e.sys.Momentum().Norm(),
	}
}

// Run steps the system cfg.Steps times, sampling every cfg.SampleEvery
// steps. It stops early when ctx is canceled, returning the partial result
// alongside the context error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Samples: make([]metrics.Sample, 0, e.cfg.Steps/e.cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
	}

	for i := 1; i <= e.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			e.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := e.sys.Step(); err != nil {
			e.finish(result)
			return result, fmt.Errorf("experiment: %w", err)
		}
		result.StepsTaken++

		if i%e.cfg.SampleEvery == 0 {
			s := e.Sample()
			result.Samples = append(result.Samples, s)
			for _, m := range e.metrics {
				m.Observe(s)
			}
		}

		if e.Progress != nil {
			e.Progress(i, e.cfg.Steps)
		}
	}

	e.finish(result)
	return result, nil
}

func (e *Experiment) finish(result *Result) {
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
