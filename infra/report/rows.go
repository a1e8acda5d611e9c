package report

import (
	"fmt"
	"time"

	"github.com/kilianp07/prosumption/core/balance"
	corereport "github.com/kilianp07/prosumption/core/report"
)

// exportColumns are the float columns written by the tabular exporters.
func exportColumns() []string {
	return balance.DerivedColumns()
}

// table is the row-aligned view the tabular exporters write.
type table struct {
	HourUTC   []time.Time
	HourDK    []time.Time
	PriceArea []string
	Columns   []string
	Values    [][]float64
}

func (t table) Len() int { return len(t.HourDK) }

func exportTable(res corereport.Result) (table, error) {
	var t table
	if res.Data == nil {
		return t, fmt.Errorf("result has no data")
	}
	var err error
	if t.HourUTC, err = res.Data.Times(balance.ColHourUTC); err != nil {
		return t, err
	}
	if t.HourDK, err = res.Data.Times(balance.ColHourDK); err != nil {
		return t, err
	}
	if t.PriceArea, err = res.Data.Strings(balance.ColPriceArea); err != nil {
		return t, err
	}
	t.Columns = exportColumns()
	for _, c := range t.Columns {
		v, err := res.Data.Floats(c)
		if err != nil {
			return t, err
		}
		t.Values = append(t.Values, v)
	}
	return t, nil
}
