package balance

import (
	"maps"
	"slices"
	"strings"

	"github.com/go-gota/gota/series"
)

// CoercionReport counts, per column, the non-empty cells that could not be
// read as numbers and were turned into missing values.
type CoercionReport map[string]int

// Total returns the number of failed cells over all columns.
func (r CoercionReport) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}
	return n
}

// Columns returns the columns with at least one failed cell, sorted.
func (r CoercionReport) Columns() []string {
	return slices.Sorted(maps.Keys(r))
}

// NormalizeDecimals replaces every comma with a dot in all text columns of
// the table, not only the numeric ones.
func NormalizeDecimals(ds *Dataset) (*Dataset, error) {
	out := ds
	for _, col := range ds.Columns() {
		s := ds.frame.Col(col)
		if s.Type() != series.String {
			continue
		}
		recs := s.Records()
		changed := false
		for i, v := range recs {
			if s.Elem(i).IsNA() || !strings.Contains(v, ",") {
				continue
			}
			recs[i] = strings.ReplaceAll(v, ",", ".")
			changed = true
		}
		if !changed {
			continue
		}
		var err error
		if out, err = out.withColumn(series.New(recs, series.String, col)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CoerceNumeric converts exactly the listed columns to float. Cells that do
// not parse become missing; this never fails on cell content, only on an
// unknown column.
func CoerceNumeric(ds *Dataset, cols ...string) (*Dataset, CoercionReport, error) {
	report := CoercionReport{}
	out := ds
	for _, col := range cols {
		src, err := ds.series(col)
		if err != nil {
			return nil, nil, err
		}
		if src.Type() == series.Float {
			continue
		}
		recs := src.Records()
		num := series.New(recs, series.Float, col)
		for i, v := range recs {
			if num.Elem(i).IsNA() && !src.Elem(i).IsNA() && strings.TrimSpace(v) != "" {
				report[col]++
			}
		}
		if out, err = out.withColumn(num); err != nil {
			return nil, nil, err
		}
	}
	return out, report, nil
}
