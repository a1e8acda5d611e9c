package balance

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset is an immutable energy-balance table: a gota data frame plus the
// parsed form of its timestamp columns. Row i of every column, parsed or
// not, describes the same hour.
type Dataset struct {
	frame dataframe.DataFrame
	times map[string][]time.Time
}

// NewDataset wraps a data frame. A frame carrying an error is rejected.
func NewDataset(frame dataframe.DataFrame) (*Dataset, error) {
	if frame.Err != nil {
		return nil, frame.Err
	}
	return &Dataset{frame: frame, times: map[string][]time.Time{}}, nil
}

// Frame returns a copy of the underlying data frame.
func (d *Dataset) Frame() dataframe.DataFrame { return d.frame.Copy() }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.frame.Nrow() }

// Columns returns the column names in table order.
func (d *Dataset) Columns() []string { return d.frame.Names() }

// Has reports whether the table has the named column.
func (d *Dataset) Has(col string) bool {
	return slices.Contains(d.frame.Names(), col)
}

// Floats returns a copy of a float column. Missing cells are NaN.
func (d *Dataset) Floats(col string) ([]float64, error) {
	s, err := d.series(col)
	if err != nil {
		return nil, err
	}
	if s.Type() != series.Float {
		return nil, fmt.Errorf("column %s has type %s, want %s", col, s.Type(), series.Float)
	}
	return s.Float(), nil
}

// Strings returns the textual records of a column.
func (d *Dataset) Strings(col string) ([]string, error) {
	s, err := d.series(col)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// Times returns a copy of a parsed timestamp column.
func (d *Dataset) Times(col string) ([]time.Time, error) {
	ts, ok := d.times[col]
	if !ok {
		return nil, fmt.Errorf("column %s is not a parsed timestamp column", col)
	}
	return slices.Clone(ts), nil
}

// Head returns the first n rows of the selected columns as a data frame.
func (d *Dataset) Head(n int, cols ...string) (dataframe.DataFrame, error) {
	for _, c := range cols {
		if !d.Has(c) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrUnknownColumn, c)
		}
	}
	n = min(n, d.Len())
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	head := d.frame.Select(cols).Subset(idx)
	return head, head.Err
}

func (d *Dataset) series(col string) (series.Series, error) {
	if !d.Has(col) {
		return series.Series{}, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
	}
	s := d.frame.Col(col)
	return s, s.Err
}

// withColumn returns a new Dataset with s appended, or replacing the column
// of the same name.
func (d *Dataset) withColumn(s series.Series) (*Dataset, error) {
	frame := d.frame.Mutate(s)
	if frame.Err != nil {
		return nil, fmt.Errorf("set column %s: %w", s.Name, frame.Err)
	}
	return &Dataset{frame: frame, times: d.times}, nil
}

func (d *Dataset) withTimes(col string, ts []time.Time) *Dataset {
	times := make(map[string][]time.Time, len(d.times)+1)
	for k, v := range d.times {
		times[k] = v
	}
	times[col] = ts
	return &Dataset{frame: d.frame, times: times}
}

func (d *Dataset) subset(idx []int) (*Dataset, error) {
	frame := d.frame.Subset(idx)
	if frame.Err != nil {
		return nil, frame.Err
	}
	times := make(map[string][]time.Time, len(d.times))
	for k, v := range d.times {
		sub := make([]time.Time, len(idx))
		for i, j := range idx {
			sub[i] = v[j]
		}
		times[k] = sub
	}
	return &Dataset{frame: frame, times: times}, nil
}
