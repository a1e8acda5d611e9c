package balance

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats summarises one float column. Moments of a column without
// values are NaN.
type ColumnStats struct {
	Column  string
	Count   int
	Missing int
	Sum     float64
	Mean    float64
	Std     float64
	Min     float64
	Max     float64
}

// Describe computes ColumnStats for each named float column.
func Describe(ds *Dataset, cols ...string) ([]ColumnStats, error) {
	res := make([]ColumnStats, 0, len(cols))
	for _, c := range cols {
		v, err := ds.Floats(c)
		if err != nil {
			return nil, err
		}
		res = append(res, describe(c, v))
	}
	return res, nil
}

func describe(col string, v []float64) ColumnStats {
	x := Present(v)
	cs := ColumnStats{
		Column:  col,
		Count:   len(x),
		Missing: len(v) - len(x),
		Sum:     floats.Sum(x),
		Mean:    math.NaN(),
		Std:     math.NaN(),
		Min:     math.NaN(),
		Max:     math.NaN(),
	}
	if len(x) == 0 {
		return cs
	}
	cs.Min, cs.Max = floats.Min(x), floats.Max(x)
	if len(x) == 1 {
		cs.Mean = x[0]
		return cs
	}
	cs.Mean, cs.Std = stat.MeanStdDev(x, nil)
	return cs
}
