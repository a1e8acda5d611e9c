package balance

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
)

// ZeroSumPolicy decides what happens when the renewable sum is zero.
type ZeroSumPolicy string

const (
	// ZeroSumNaN keeps going with a NaN scaling factor; the scaled column is
	// then entirely missing.
	ZeroSumNaN ZeroSumPolicy = "nan"
	// ZeroSumError aborts with ErrDivisionByZero.
	ZeroSumError ZeroSumPolicy = "error"
)

// DeriveBase appends totalwind, solarandwind, energyconsumption and
// prosumption_before_scale. NaN operands give NaN results.
func DeriveBase(ds *Dataset) (*Dataset, error) {
	in, err := floatColumns(ds, ColOnshoreWindPower, ColOffshoreWindPower, ColSolarPower, ColTotalLoad, ColBiomass)
	if err != nil {
		return nil, err
	}
	n := ds.Len()
	totalWind := floats.AddTo(make([]float64, n), in[ColOnshoreWindPower], in[ColOffshoreWindPower])
	solarAndWind := floats.AddTo(make([]float64, n), totalWind, in[ColSolarPower])
	consumption := floats.SubTo(make([]float64, n), in[ColTotalLoad], in[ColBiomass])
	prosumption := floats.SubTo(make([]float64, n), solarAndWind, consumption)

	out := ds
	for _, s := range []series.Series{
		series.New(totalWind, series.Float, ColTotalWind),
		series.New(solarAndWind, series.Float, ColSolarAndWind),
		series.New(consumption, series.Float, ColEnergyConsumption),
		series.New(prosumption, series.Float, ColProsumptionBeforeScale),
	} {
		if out, err = out.withColumn(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeriveScaled appends scaled_solarandwind = solarandwind * factor.
func DeriveScaled(ds *Dataset, factor float64) (*Dataset, error) {
	sw, err := ds.Floats(ColSolarAndWind)
	if err != nil {
		return nil, err
	}
	scaled := floats.ScaleTo(make([]float64, len(sw)), factor, sw)
	return ds.withColumn(series.New(scaled, series.Float, ColScaledSolarAndWind))
}

// Derive runs DeriveBase, Aggregate and DeriveScaled in order. With
// ZeroSumNaN a zero renewable sum yields a NaN factor and no error.
func Derive(ds *Dataset, policy ZeroSumPolicy) (*Dataset, Totals, error) {
	base, err := DeriveBase(ds)
	if err != nil {
		return nil, Totals{}, err
	}
	totals, err := Aggregate(base)
	if err != nil {
		if !errors.Is(err, ErrDivisionByZero) || policy == ZeroSumError {
			return nil, totals, err
		}
		totals.ScalingFactor = math.NaN()
	}
	out, err := DeriveScaled(base, totals.ScalingFactor)
	if err != nil {
		return nil, totals, err
	}
	return out, totals, nil
}

func floatColumns(ds *Dataset, cols ...string) (map[string][]float64, error) {
	res := make(map[string][]float64, len(cols))
	for _, c := range cols {
		v, err := ds.Floats(c)
		if err != nil {
			return nil, fmt.Errorf("derive: %w", err)
		}
		res[c] = v
	}
	return res, nil
}
