package balance

import "github.com/go-gota/gota/series"

// Source columns of the energy-balance file.
const (
	ColPriceArea               = "PriceArea"
	ColTotalLoad               = "TotalLoad"
	ColBiomass                 = "Biomass"
	ColFossilGas               = "FossilGas"
	ColFossilHardCoal          = "FossilHardCoal"
	ColFossilOil               = "FossilOil"
	ColHydroPower              = "HydroPower"
	ColOtherRenewable          = "OtherRenewable"
	ColSolarPower              = "SolarPower"
	ColWaste                   = "Waste"
	ColOnshoreWindPower        = "OnshoreWindPower"
	ColOffshoreWindPower       = "OffshoreWindPower"
	ColExchangeContinent       = "ExchangeContinent"
	ColExchangeGreatBelt       = "ExchangeGreatBelt"
	ColExchangeNordicCountries = "ExchangeNordicCountries"
	ColExchangeGreatBritain    = "ExchangeGreatBritain"
	ColHourUTC                 = "HourUTC"
	ColHourDK                  = "HourDK"
)

// Derived columns, in dependency order.
const (
	ColTotalWind              = "totalwind"
	ColSolarAndWind           = "solarandwind"
	ColEnergyConsumption      = "energyconsumption"
	ColProsumptionBeforeScale = "prosumption_before_scale"
	ColScaledSolarAndWind     = "scaled_solarandwind"
)

// NumericColumns lists the measured columns coerced to float.
func NumericColumns() []string {
	return []string{
		ColTotalLoad, ColBiomass, ColFossilGas, ColFossilHardCoal, ColFossilOil,
		ColHydroPower, ColOtherRenewable, ColSolarPower, ColWaste,
		ColOnshoreWindPower, ColOffshoreWindPower, ColExchangeContinent,
		ColExchangeGreatBelt, ColExchangeNordicCountries, ColExchangeGreatBritain,
	}
}

// TimestampColumns lists the identity columns holding hour stamps.
func TimestampColumns() []string {
	return []string{ColHourUTC, ColHourDK}
}

// DerivedColumns lists the computed columns in the order they are appended.
func DerivedColumns() []string {
	return []string{
		ColTotalWind, ColSolarAndWind, ColEnergyConsumption,
		ColProsumptionBeforeScale, ColScaledSolarAndWind,
	}
}

// RequiredColumns is the header every input file must carry.
func RequiredColumns() []string {
	cols := []string{ColPriceArea}
	cols = append(cols, NumericColumns()...)
	return append(cols, TimestampColumns()...)
}

// DeclaredTypes declares the price area and every measured column as text so
// that no locale dependent number parsing happens while loading.
func DeclaredTypes() map[string]series.Type {
	types := map[string]series.Type{ColPriceArea: series.String}
	for _, c := range NumericColumns() {
		types[c] = series.String
	}
	return types
}

// PreviewColumns is the column subset shown in the tabular preview.
func PreviewColumns() []string {
	return append([]string{ColHourDK}, DerivedColumns()...)
}
