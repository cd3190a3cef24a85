package dataset

// Row is one country-year observation from the OWID emissions table. Numeric
// fields other than CO2 and CO2PerCapita may be NaN: the source only
// guarantees values for the columns the cleaning step requires.
type Row struct {
	Country        string  `dataframe:"country" json:"country"`
	ISOCode        string  `dataframe:"iso_code" json:"iso_code"`
	Year           int     `dataframe:"year" json:"year"`
	CO2            float64 `dataframe:"co2" json:"co2"`
	CO2PerCapita   float64 `dataframe:"co2_per_capita" json:"co2_per_capita"`
	Population     float64 `dataframe:"population" json:"population"`
	GDP            float64 `dataframe:"gdp" json:"gdp"`
	CO2PerGDP      float64 `dataframe:"co2_per_gdp" json:"co2_per_gdp"`
	CumulativeCO2  float64 `dataframe:"cumulative_co2" json:"cumulative_co2"`
	CoalCO2        float64 `dataframe:"coal_co2" json:"coal_co2"`
	OilCO2         float64 `dataframe:"oil_co2" json:"oil_co2"`
	GasCO2         float64 `dataframe:"gas_co2" json:"gas_co2"`
	ShareGlobalCO2 float64 `dataframe:"share_global_co2" json:"share_global_co2"`
}

// MapPoint is one country on the choropleth map for a given year.
type MapPoint struct {
	ISOCode string  `json:"iso_code"`
	Country string  `json:"country"`
	CO2     float64 `json:"co2"`
}

// Point is one observation of the selected variable in a time series.
type Point struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Value   float64 `json:"value"`
}

// Fuel identifies one of the per-fuel emission columns.
type Fuel string

const (
	FuelCoal Fuel = "coal"
	FuelOil  Fuel = "oil"
	FuelGas  Fuel = "gas"
)

// Fuels lists the fuels in display order.
func Fuels() []Fuel { return []Fuel{FuelCoal, FuelOil, FuelGas} }

// FuelRecord is the long-form reshape of the coal/oil/gas columns, keyed by
// (country, year, fuel). EmissionsMt is in million tonnes.
type FuelRecord struct {
	Country     string  `json:"country"`
	Year        int     `json:"year"`
	Fuel        Fuel    `json:"fuel"`
	EmissionsMt float64 `json:"emissions"`
}
