package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kilianp07/prosumption/core/balance"
)

// Result is everything a run produced.
type Result struct {
	RunID       string
	Source      string
	GeneratedAt time.Time
	// Data is the table the derivations ran on, derived columns included.
	Data *balance.Dataset
	// Subset is the HourDK range-filtered table.
	Subset   *balance.Dataset
	Range    balance.TimeRange
	Totals   balance.Totals
	Stats    []balance.ColumnStats
	Coercion balance.CoercionReport
}

// Series returns the HourDK stamps and the values of a float column of Data.
func (r Result) Series(col string) ([]time.Time, []float64, error) {
	if r.Data == nil {
		return nil, nil, fmt.Errorf("result has no data")
	}
	ts, err := r.Data.Times(balance.ColHourDK)
	if err != nil {
		return nil, nil, err
	}
	v, err := r.Data.Floats(col)
	if err != nil {
		return nil, nil, err
	}
	return ts, v, nil
}

// PriceArea returns the price area of the first row, or "" when unknown.
func (r Result) PriceArea() string {
	if r.Data == nil || !r.Data.Has(balance.ColPriceArea) || r.Data.Len() == 0 {
		return ""
	}
	v, err := r.Data.Strings(balance.ColPriceArea)
	if err != nil {
		return ""
	}
	return v[0]
}

// Reporter presents or exports a Result.
type Reporter interface {
	Report(ctx context.Context, res Result) error
}

// Nop implements Reporter and does nothing.
type Nop struct{}

func (Nop) Report(context.Context, Result) error { return nil }

// Multi fans a Result out to several reporters. Every reporter runs even when
// an earlier one failed; the errors are joined.
type Multi struct {
	Reporters []Reporter
}

// NewMulti creates a Multi with the provided reporters.
func NewMulti(reporters ...Reporter) *Multi {
	return &Multi{Reporters: reporters}
}

// Report forwards res to all reporters.
func (m *Multi) Report(ctx context.Context, res Result) error {
	var errs []error
	for _, r := range m.Reporters {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := r.Report(ctx, res); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", r, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every reporter holding resources.
func (m *Multi) Close() error {
	var errs []error
	for _, r := range m.Reporters {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
