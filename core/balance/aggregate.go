package balance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Totals holds the scalar aggregates of a run, in MWh.
type Totals struct {
	EnergyConsumptionSum float64
	SolarAndWindSum      float64
	ScalingFactor        float64
}

// Scaled reports whether a usable scaling factor was computed.
func (t Totals) Scaled() bool {
	return !math.IsNaN(t.ScalingFactor) && !math.IsInf(t.ScalingFactor, 0)
}

// Present returns the non-NaN values of v.
func Present(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Sum adds the non-missing values. The sum of nothing is 0.
func Sum(v []float64) float64 {
	return floats.Sum(Present(v))
}

// ScalingFactor returns consumption / renewable. A zero denominator yields
// NaN and ErrDivisionByZero.
func ScalingFactor(consumption, renewable float64) (float64, error) {
	if renewable == 0 {
		return math.NaN(), ErrDivisionByZero
	}
	return consumption / renewable, nil
}

// Aggregate sums energyconsumption and solarandwind and computes the scaling
// factor. On a zero renewable sum the sums are still returned.
func Aggregate(ds *Dataset) (Totals, error) {
	cons, err := ds.Floats(ColEnergyConsumption)
	if err != nil {
		return Totals{}, err
	}
	sw, err := ds.Floats(ColSolarAndWind)
	if err != nil {
		return Totals{}, err
	}
	t := Totals{EnergyConsumptionSum: Sum(cons), SolarAndWindSum: Sum(sw)}
	t.ScalingFactor, err = ScalingFactor(t.EnergyConsumptionSum, t.SolarAndWindSum)
	if err != nil {
		return t, fmt.Errorf("scaling factor: %s sum is 0: %w", ColSolarAndWind, err)
	}
	return t, nil
}
