package balance

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the hour stamp layout of HourUTC and HourDK.
const TimestampLayout = "2006-01-02 15:04"

const dateLayout = "2006-01-02"

// TimeRange is a closed interval [Start, End].
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ParseBound parses a range bound given either as a date (midnight) or in
// TimestampLayout.
func ParseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("range bound %q: want %q or %q", s, dateLayout, TimestampLayout)
	}
	return t, nil
}

// ParseTimestamps parses the named text columns with layout. The first cell
// that does not match, missing cells included, aborts with a *ParseError.
// Parsed values are available through Dataset.Times; the text column stays
// in the frame for display.
func ParseTimestamps(ds *Dataset, layout string, cols ...string) (*Dataset, error) {
	out := ds
	for _, col := range cols {
		s, err := ds.series(col)
		if err != nil {
			return nil, err
		}
		recs := s.Records()
		ts := make([]time.Time, len(recs))
		for i, v := range recs {
			if s.Elem(i).IsNA() {
				return nil, &ParseError{Column: col, Row: i, Value: "", Layout: layout}
			}
			t, err := time.Parse(layout, v)
			if err != nil {
				return nil, &ParseError{Column: col, Row: i, Value: v, Layout: layout}
			}
			ts[i] = t
		}
		out = out.withTimes(col, ts)
	}
	return out, nil
}

// FilterRange keeps the rows whose parsed timestamp in col lies within r.
func FilterRange(ds *Dataset, col string, r TimeRange) (*Dataset, error) {
	ts, ok := ds.times[col]
	if !ok {
		return nil, fmt.Errorf("column %s is not a parsed timestamp column", col)
	}
	idx := make([]int, 0, len(ts))
	for i, t := range ts {
		if r.Contains(t) {
			idx = append(idx, i)
		}
	}
	return ds.subset(idx)
}
