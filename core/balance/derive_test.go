package balance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatsOf(t *testing.T, ds *Dataset, col string) []float64 {
	t.Helper()
	v, err := ds.Floats(col)
	require.NoError(t, err)
	return v
}

func TestDeriveThreeHourScenario(t *testing.T) {
	ds, totals, err := Derive(fixtureDataset(t), ZeroSumError)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 2, 4}, floatsOf(t, ds, ColTotalWind))
	assert.Equal(t, []float64{2, 3, 4}, floatsOf(t, ds, ColSolarAndWind))
	assert.Equal(t, []float64{9, 9, 9}, floatsOf(t, ds, ColEnergyConsumption))
	assert.Equal(t, []float64{-7, -6, -5}, floatsOf(t, ds, ColProsumptionBeforeScale))
	assert.InDeltaSlice(t, []float64{6, 9, 12}, floatsOf(t, ds, ColScaledSolarAndWind), 1e-12)

	assert.Equal(t, 27.0, totals.EnergyConsumptionSum)
	assert.Equal(t, 9.0, totals.SolarAndWindSum)
	assert.InDelta(t, 3.0, totals.ScalingFactor, 1e-12)
	assert.True(t, totals.Scaled())
}

func TestDeriveAppendsInOrderWithoutTouchingInputs(t *testing.T) {
	in := fixtureDataset(t)
	out, _, err := Derive(in, ZeroSumNaN)
	require.NoError(t, err)

	cols := out.Columns()
	assert.Equal(t, in.Columns(), cols[:len(in.Columns())])
	assert.Equal(t, DerivedColumns(), cols[len(in.Columns()):])
	assert.Equal(t, in.Len(), out.Len())
	assert.False(t, in.Has(ColTotalWind))
	assert.Equal(t, []float64{1, 2, 3}, floatsOf(t, out, ColOnshoreWindPower))
}

func TestDeriveBasePropagatesMissing(t *testing.T) {
	nan := math.NaN()
	ds := newDataset(t,
		numCol(ColOnshoreWindPower, 1, nan, 3, 4),
		numCol(ColOffshoreWindPower, 1, 1, nan, 4),
		numCol(ColSolarPower, 0, 1, 1, nan),
		numCol(ColTotalLoad, 10, 10, nan, 10),
		numCol(ColBiomass, 1, 1, 1, 1),
	)
	out, err := DeriveBase(ds)
	require.NoError(t, err)

	tw := floatsOf(t, out, ColTotalWind)
	sw := floatsOf(t, out, ColSolarAndWind)
	ec := floatsOf(t, out, ColEnergyConsumption)
	pr := floatsOf(t, out, ColProsumptionBeforeScale)

	assert.Equal(t, 2.0, tw[0])
	assert.True(t, math.IsNaN(tw[1]))
	assert.True(t, math.IsNaN(tw[2]))
	assert.Equal(t, 8.0, tw[3])

	assert.True(t, math.IsNaN(sw[1]))
	assert.True(t, math.IsNaN(sw[3]), "missing solar makes solarandwind missing")
	assert.True(t, math.IsNaN(ec[2]))
	assert.Equal(t, 9.0, ec[3])
	for i := 1; i < 4; i++ {
		assert.True(t, math.IsNaN(pr[i]), "row %d", i)
	}
	assert.Equal(t, -7.0, pr[0])
}

func TestDeriveRowIdentities(t *testing.T) {
	ds := newDataset(t,
		numCol(ColOnshoreWindPower, 1012.4, 0.3, 2500.75),
		numCol(ColOffshoreWindPower, 845.1, 12.9, 0),
		numCol(ColSolarPower, 0, 233.33, 17.5),
		numCol(ColTotalLoad, 3900.2, 4100.9, 3500),
		numCol(ColBiomass, 310.4, 299.9, 305.05),
	)
	out, totals, err := Derive(ds, ZeroSumError)
	require.NoError(t, err)

	on, off := floatsOf(t, out, ColOnshoreWindPower), floatsOf(t, out, ColOffshoreWindPower)
	solar, load, bio := floatsOf(t, out, ColSolarPower), floatsOf(t, out, ColTotalLoad), floatsOf(t, out, ColBiomass)
	tw, sw := floatsOf(t, out, ColTotalWind), floatsOf(t, out, ColSolarAndWind)
	ec, pr := floatsOf(t, out, ColEnergyConsumption), floatsOf(t, out, ColProsumptionBeforeScale)
	sc := floatsOf(t, out, ColScaledSolarAndWind)
	for i := range on {
		assert.InDelta(t, on[i]+off[i], tw[i], 1e-9)
		assert.InDelta(t, tw[i]+solar[i], sw[i], 1e-9)
		assert.InDelta(t, load[i]-bio[i], ec[i], 1e-9)
		assert.InDelta(t, sw[i]-ec[i], pr[i], 1e-9)
		assert.InDelta(t, sw[i]*totals.ScalingFactor, sc[i], 1e-9)
	}
	assert.InEpsilon(t, totals.EnergyConsumptionSum, totals.ScalingFactor*totals.SolarAndWindSum, 1e-9)
	assert.InEpsilon(t, totals.EnergyConsumptionSum, Sum(sc), 1e-9)
}

func TestDeriveZeroRenewableSum(t *testing.T) {
	zero := func() *Dataset {
		return newDataset(t,
			numCol(ColOnshoreWindPower, 0, 0),
			numCol(ColOffshoreWindPower, 0, 0),
			numCol(ColSolarPower, 0, 0),
			numCol(ColTotalLoad, 5, 5),
			numCol(ColBiomass, 1, 1),
		)
	}

	_, totals, err := Derive(zero(), ZeroSumError)
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.Equal(t, 8.0, totals.EnergyConsumptionSum)

	out, totals, err := Derive(zero(), ZeroSumNaN)
	require.NoError(t, err)
	assert.False(t, totals.Scaled())
	for _, v := range floatsOf(t, out, ColScaledSolarAndWind) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestDeriveRequiresNumericColumns(t *testing.T) {
	ds := newDataset(t, textCol(ColOnshoreWindPower, "1"))
	_, err := DeriveBase(ds)
	assert.Error(t, err)
}
