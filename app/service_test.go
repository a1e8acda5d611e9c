package app

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prosumption/config"
	"github.com/kilianp07/prosumption/core/balance"
	"github.com/kilianp07/prosumption/core/factory"
	"github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/logger"
)

const header = "HourUTC;HourDK;PriceArea;TotalLoad;Biomass;FossilGas;FossilHardCoal;FossilOil;HydroPower;OtherRenewable;SolarPower;Waste;OnshoreWindPower;OffshoreWindPower;ExchangeContinent;ExchangeGreatBelt;ExchangeNordicCountries;ExchangeGreatBritain"

const threeHours = header + `
2023-01-10 23:00;2023-01-11 00:00;DK1;10;1;0;0;0;0;0;0;0;1;1;0;0;0;0
2023-01-11 00:00;2023-01-11 01:00;DK1;10,0;1;0;0;0;0;0;1;0;2;0;0;0;0;0
2023-01-11 01:00;2023-01-11 02:00;DK1;10;1;0;0;0;0;0;0;0;3;1;0;0;0;0
`

type captureReporter struct {
	got    []report.Result
	err    error
	closed bool
}

func (c *captureReporter) Report(_ context.Context, res report.Result) error {
	c.got = append(c.got, res)
	return c.err
}

func (c *captureReporter) Close() error {
	c.closed = true
	return nil
}

func testConfig(t *testing.T, data string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balance.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg := config.Default()
	cfg.Input.Path = path
	return cfg
}

func newService(t *testing.T, cfg *config.Config, rep report.Reporter) *Service {
	t.Helper()
	svc, err := New(cfg, WithReporter(rep), WithLogger(logger.NopLogger{}))
	require.NoError(t, err)
	return svc
}

func TestRunThreeHours(t *testing.T) {
	rep := &captureReporter{}
	cfg := testConfig(t, threeHours)
	svc := newService(t, cfg, rep)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.got, 1)

	assert.Equal(t, 27.0, res.Totals.EnergyConsumptionSum)
	assert.Equal(t, 9.0, res.Totals.SolarAndWindSum)
	assert.Equal(t, 3.0, res.Totals.ScalingFactor)
	scaled, err := res.Data.Floats(balance.ColScaledSolarAndWind)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 9, 12}, scaled)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, cfg.Input.Path, res.Source)
	assert.Empty(t, res.Coercion)
	assert.Len(t, res.Stats, len(balance.DerivedColumns()))

	// hour 23:00 on the 10th in UTC is midnight on the 11th in HourDK
	assert.Equal(t, 3, res.Subset.Len())
	assert.Equal(t, 3, res.Data.Len())
}

func TestRunDerivesOnWholeTableByDefault(t *testing.T) {
	cfg := testConfig(t, threeHours)
	cfg.Range.Start = "2023-01-11 01:00"
	svc := newService(t, cfg, &captureReporter{})

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Subset.Len())
	assert.Equal(t, 3, res.Data.Len())
	assert.Equal(t, 27.0, res.Totals.EnergyConsumptionSum)
}

func TestRunApplyRangeToDerivations(t *testing.T) {
	cfg := testConfig(t, threeHours)
	cfg.Range.Start = "2023-01-11 01:00"
	cfg.Range.ApplyToDerivations = true
	svc := newService(t, cfg, &captureReporter{})

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Data.Len())
	assert.Equal(t, 18.0, res.Totals.EnergyConsumptionSum)
	assert.Equal(t, 7.0, res.Totals.SolarAndWindSum)
}

func TestRunZeroRenewables(t *testing.T) {
	data := header + `
2023-01-10 23:00;2023-01-11 00:00;DK1;10;1;0;0;0;0;0;0;0;0;0;0;0;0;0
`
	cfg := testConfig(t, data)
	res, err := newService(t, cfg, &captureReporter{}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Totals.ScalingFactor))
	scaled, err := res.Data.Floats(balance.ColScaledSolarAndWind)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(scaled[0]))

	cfg.Scaling.OnZeroSum = string(balance.ZeroSumError)
	_, err = newService(t, cfg, &captureReporter{}).Run(context.Background())
	assert.ErrorIs(t, err, balance.ErrDivisionByZero)
}

func TestRunCountsUnparseableValues(t *testing.T) {
	data := header + `
2023-01-10 23:00;2023-01-11 00:00;DK1;abc;1;0;0;0;0;0;0;0;1;1;0;0;0;0
2023-01-11 00:00;2023-01-11 01:00;DK1;12,5;1;0;0;0;0;0;0;0;1;1;0;0;0;0
`
	res, err := newService(t, testConfig(t, data), &captureReporter{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Coercion[balance.ColTotalLoad])
	cons, err := res.Data.Floats(balance.ColEnergyConsumption)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(cons[0]))
	assert.Equal(t, 11.5, cons[1])
	assert.Equal(t, 11.5, res.Totals.EnergyConsumptionSum)
}

func TestRunMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Path = filepath.Join(t.TempDir(), "absent.csv")
	rep := &captureReporter{}
	_, err := newService(t, cfg, rep).Run(context.Background())
	assert.ErrorIs(t, err, balance.ErrDataLoad)
	assert.Empty(t, rep.got)
}

func TestRunBadTimestamp(t *testing.T) {
	data := header + `
2023-01-10 23:00;11/01/2023 00:00;DK1;10;1;0;0;0;0;0;0;0;1;1;0;0;0;0
`
	_, err := newService(t, testConfig(t, data), &captureReporter{}).Run(context.Background())
	assert.ErrorIs(t, err, balance.ErrParse)
}

func TestRunCancelled(t *testing.T) {
	rep := &captureReporter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newService(t, testConfig(t, threeHours), rep).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rep.got)
}

func TestRunReporterError(t *testing.T) {
	rep := &captureReporter{err: errors.New("disk full")}
	res, err := newService(t, testConfig(t, threeHours), rep).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 3.0, res.Totals.ScalingFactor)
}

func TestNewBuildsConfiguredReporters(t *testing.T) {
	cfg := testConfig(t, threeHours)
	out := filepath.Join(t.TempDir(), "out.csv")
	cfg.Reporters = []factory.ModuleConfig{{Type: "csv", Conf: map[string]any{"path": out}}}
	svc, err := New(cfg, WithLogger(logger.NopLogger{}), WithClock(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), res.GeneratedAt)
	_, err = os.Stat(out)
	assert.NoError(t, err)
	require.NoError(t, svc.Close())
}

func TestNewUnknownReporter(t *testing.T) {
	cfg := config.Default()
	cfg.Reporters = []factory.ModuleConfig{{Type: "fax"}}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestCloseClosesReporter(t *testing.T) {
	rep := &captureReporter{}
	require.NoError(t, newService(t, config.Default(), rep).Close())
	assert.True(t, rep.closed)
}
