package report

import (
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/prosumption/core/balance"
	corereport "github.com/kilianp07/prosumption/core/report"
)

// Chart labels shared by the chart renderers.
const (
	ChartTitle  = "Time Series of Wind, Solar, Energy Consumption, and Prosumption"
	ChartXLabel = "Time (HourDK)"
	ChartYLabel = "Power (MWh)"
)

// DefaultChartColumns are the series overlaid on the chart.
func DefaultChartColumns() []string {
	return []string{balance.ColSolarAndWind, balance.ColEnergyConsumption, balance.ColScaledSolarAndWind}
}

var seriesLabels = map[string]string{
	balance.ColTotalWind:              "Total Wind Power",
	balance.ColSolarAndWind:           "Solar and Wind Power",
	balance.ColEnergyConsumption:      "Energy Consumption",
	balance.ColProsumptionBeforeScale: "Prosumption",
	balance.ColScaledSolarAndWind:     "Scaled Solar and Wind Power",
}

func seriesLabel(col string) string {
	if l, ok := seriesLabels[col]; ok {
		return l
	}
	return col
}

// chartSeries is one named series split into runs of present values, so a
// missing hour shows as a gap.
type chartSeries struct {
	Column   string
	Label    string
	Segments [][]chartPoint
}

type chartPoint struct {
	T time.Time
	V float64
}

func (s chartSeries) points() int {
	n := 0
	for _, seg := range s.Segments {
		n += len(seg)
	}
	return n
}

func collectSeries(res corereport.Result, cols []string) ([]chartSeries, error) {
	out := make([]chartSeries, 0, len(cols))
	for _, col := range cols {
		ts, v, err := res.Series(col)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", col, err)
		}
		s := chartSeries{Column: col, Label: seriesLabel(col)}
		var seg []chartPoint
		for i := range v {
			if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
				if len(seg) > 0 {
					s.Segments = append(s.Segments, seg)
					seg = nil
				}
				continue
			}
			seg = append(seg, chartPoint{T: ts[i], V: v[i]})
		}
		if len(seg) > 0 {
			s.Segments = append(s.Segments, seg)
		}
		out = append(out, s)
	}
	return out, nil
}
