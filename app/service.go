package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/prosumption/config"
	"github.com/kilianp07/prosumption/core/balance"
	"github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/ingest"
	"github.com/kilianp07/prosumption/infra/logger"

	// registers the built-in reporters
	_ "github.com/kilianp07/prosumption/infra/report"
)

// Service runs the energy-balance analysis and hands the result to the
// configured reporters.
type Service struct {
	cfg      *config.Config
	reporter report.Reporter
	log      logger.Logger
	now      func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithReporter replaces the configured reporters.
func WithReporter(r report.Reporter) Option {
	return func(s *Service) { s.reporter = r }
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock sets the time source of the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger.SetLevel(cfg.Log.Level)
	s := &Service{cfg: cfg, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.New("service")
	}
	if s.reporter == nil {
		r, err := report.New(cfg.Reporters)
		if err != nil {
			return nil, fmt.Errorf("reporters: %w", err)
		}
		s.reporter = r
	}
	return s, nil
}

// Run loads the input, derives the prosumption columns, aggregates them and
// reports the result. Reporter failures are returned together with the
// result.
func (s *Service) Run(ctx context.Context) (report.Result, error) {
	res := report.Result{
		RunID:       uuid.NewString(),
		Source:      s.cfg.Input.Path,
		GeneratedAt: s.now(),
	}
	window, err := s.cfg.Range.TimeRange()
	if err != nil {
		return res, fmt.Errorf("range: %w", err)
	}
	res.Range = window

	opts := ingest.DefaultOptions()
	opts.Delimiter = s.cfg.Input.DelimiterRune()
	ds, err := ingest.Load(s.cfg.Input.Path, opts)
	if err != nil {
		return res, err
	}
	s.log.Infow("input loaded", map[string]any{"path": s.cfg.Input.Path, "rows": ds.Len()})
	if err := ctx.Err(); err != nil {
		return res, err
	}

	ds, err = balance.ParseTimestamps(ds, balance.TimestampLayout, balance.TimestampColumns()...)
	if err != nil {
		return res, err
	}
	subset, err := balance.FilterRange(ds, s.cfg.Range.Column, window)
	if err != nil {
		return res, err
	}
	res.Subset = subset
	s.log.Debugw("range selected", map[string]any{
		"column": s.cfg.Range.Column,
		"start":  window.Start,
		"end":    window.End,
		"rows":   subset.Len(),
	})
	if s.cfg.Range.ApplyToDerivations {
		ds = subset
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	ds, err = balance.NormalizeDecimals(ds)
	if err != nil {
		return res, err
	}
	ds, coercion, err := balance.CoerceNumeric(ds, balance.NumericColumns()...)
	if err != nil {
		return res, err
	}
	res.Coercion = coercion
	for _, col := range coercion.Columns() {
		s.log.Warnf("%d values in %s could not be read as numbers and are treated as missing", coercion[col], col)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	ds, totals, err := balance.Derive(ds, s.cfg.Scaling.Policy())
	res.Totals = totals
	if err != nil {
		return res, err
	}
	if !totals.Scaled() {
		s.log.Warnf("solar and wind sum is zero, scaling factor is undefined")
	}
	res.Data = ds
	if res.Stats, err = balance.Describe(ds, balance.DerivedColumns()...); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := s.reporter.Report(ctx, res); err != nil {
		return res, fmt.Errorf("report: %w", err)
	}
	s.log.Infow("run complete", map[string]any{
		"run_id":         res.RunID,
		"scaling_factor": totals.ScalingFactor,
	})
	return res, nil
}

// Close releases resources held by the reporters.
func (s *Service) Close() error {
	if c, ok := s.reporter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
