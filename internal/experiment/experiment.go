package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/config"
	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/metrics"
	"github.com/san-kum/popsim/internal/sim"
	"github.com/san-kum/popsim/internal/storage"
)

// Report is everything one run produced.
type Report struct {
	Params   dynamo.Parameters
	Facts    analysis.Facts
	Result   *sim.Result
	Metrics  map[string]float64
	Warnings []string
	CSVPath  string
	CSVRows  int
}

type Experiment struct {
	cfg       *config.Config
	logger    *log.Logger
	stepper   dynamo.Stepper
	metrics   []metrics.Metric
	observers []dynamo.Observer
	warnings  []string
}

// New creates an experiment for cfg. A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger) *Experiment {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Experiment{
		cfg:    cfg,
		logger: logger,
	}
}

// Setup validates the configuration at the boundary and wires the
// simulator. Non-fatal findings are logged as warnings.
func (e *Experiment) Setup(stepper dynamo.Stepper, ms []metrics.Metric) error {
	warnings, err := e.cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	for _, w := range warnings {
		e.logger.Warn(w)
	}
	e.warnings = warnings

	e.stepper = stepper
	e.metrics = ms
	return nil
}

// AddObserver attaches o to every subsequent run.
func (e *Experiment) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if e.stepper == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	params := e.cfg.Params()
	report := &Report{
		Params:   params,
		Facts:    analysis.Analyze(params),
		Metrics:  make(map[string]float64),
		Warnings: e.warnings,
	}

	simulator := sim.New(e.stepper)
	for _, m := range e.metrics {
		m.Reset()
		simulator.AddObserver(m)
	}
	for _, o := range e.observers {
		simulator.AddObserver(o)
	}

	var csvWriter *storage.Writer
	if path := e.cfg.Output.CSV; path != "" {
		w, err := storage.Create(path)
		if err != nil {
			return nil, err
		}
		csvWriter = w
		report.CSVPath = path
		simulator.AddObserver(w)
	}

	e.logger.Debug("simulation started", "params", params.String(), "steps", params.Steps())

	result, err := simulator.Collect(ctx, params)
	if csvWriter != nil {
		if cerr := csvWriter.Close(); err == nil {
			err = cerr
		}
		report.CSVRows = csvWriter.Rows()
	}
	if err != nil {
		if csvWriter != nil {
			e.discard(report.CSVPath)
		}
		return nil, err
	}

	report.Result = result
	for _, m := range e.metrics {
		report.Metrics[m.Name()] = m.Value()
	}

	final := result.Final()
	e.logger.Debug("simulation finished", "reason", result.Reason, "samples", len(result.Samples), "t", final.Time, "population", final.Population)

	return report, nil
}

// discard removes a record left incomplete by a failed run.
func (e *Experiment) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("partial record left on disk", "path", path, "err", err)
		return
	}
	e.logger.Warn("run stopped, partial record removed", "path", path)
}
