package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prosumption/core/balance"
	corereport "github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/ingest"
)

const header = "HourUTC;HourDK;PriceArea;TotalLoad;Biomass;FossilGas;FossilHardCoal;FossilOil;HydroPower;OtherRenewable;SolarPower;Waste;OnshoreWindPower;OffshoreWindPower;ExchangeContinent;ExchangeGreatBelt;ExchangeNordicCountries;ExchangeGreatBritain"

// threeHours gives consumption 9 and solar+wind 2, 3 and 4.
const threeHours = header + `
2023-01-10 23:00;2023-01-11 00:00;DK1;10;1;0;0;0;0;0;0;0;1;1;0;0;0;0
2023-01-11 00:00;2023-01-11 01:00;DK1;10,0;1;0;0;0;0;0;1;0;2;0;0;0;0;0
2023-01-11 01:00;2023-01-11 02:00;DK1;10;1;0;0;0;0;0;0;0;3;1;0;0;0;0
`

// withGap has an unreadable solar value in the second hour.
const withGap = header + `
2023-01-10 23:00;2023-01-11 00:00;DK1;10;1;0;0;0;0;0;0;0;1;1;0;0;0;0
2023-01-11 00:00;2023-01-11 01:00;DK1;10;1;0;0;0;0;0;n/a;0;2;0;0;0;0;0
2023-01-11 01:00;2023-01-11 02:00;DK1;10;1;0;0;0;0;0;0;0;3;1;0;0;0;0
`

func sampleResult(t *testing.T, text string) corereport.Result {
	t.Helper()
	ds, err := ingest.Read(strings.NewReader(text), ingest.DefaultOptions())
	require.NoError(t, err)
	ds, err = balance.ParseTimestamps(ds, balance.TimestampLayout, balance.TimestampColumns()...)
	require.NoError(t, err)
	r := balance.TimeRange{
		Start: time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 11, 1, 0, 0, 0, time.UTC),
	}
	subset, err := balance.FilterRange(ds, balance.ColHourDK, r)
	require.NoError(t, err)
	ds, err = balance.NormalizeDecimals(ds)
	require.NoError(t, err)
	ds, coercion, err := balance.CoerceNumeric(ds, balance.NumericColumns()...)
	require.NoError(t, err)
	ds, totals, err := balance.Derive(ds, balance.ZeroSumNaN)
	require.NoError(t, err)
	stats, err := balance.Describe(ds, balance.DerivedColumns()...)
	require.NoError(t, err)
	return corereport.Result{
		RunID:       "run-1",
		Source:      "sample.csv",
		GeneratedAt: time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC),
		Data:        ds,
		Subset:      subset,
		Range:       r,
		Totals:      totals,
		Stats:       stats,
		Coercion:    coercion,
	}
}
