package dataset

import "fmt"

// Variable names a plottable column of the emissions table.
type Variable string

const (
	VarCO2            Variable = "co2"
	VarCO2PerCapita   Variable = "co2_per_capita"
	VarPopulation     Variable = "population"
	VarGDP            Variable = "gdp"
	VarCO2PerGDP      Variable = "co2_per_gdp"
	VarCumulativeCO2  Variable = "cumulative_co2"
	VarShareGlobalCO2 Variable = "share_global_co2"
)

var variableLabels = map[Variable]string{
	VarCO2:            "Annual CO₂ Emissions (Million Tonnes)",
	VarCO2PerCapita:   "CO₂ Emissions per Capita (Tonnes)",
	VarPopulation:     "Population (Total)",
	VarGDP:            "GDP (Total)",
	VarCO2PerGDP:      "CO₂ Emissions per GDP (kg per $)",
	VarCumulativeCO2:  "Cumulative CO₂ Emissions (Million Tonnes)",
	VarShareGlobalCO2: "Share of Global CO₂ Emissions (%)",
}

// Variables lists the selectable variables in display order. The first entry
// is the dashboard default.
func Variables() []Variable {
	return []Variable{
		VarCO2,
		VarCO2PerCapita,
		VarPopulation,
		VarGDP,
		VarCO2PerGDP,
		VarCumulativeCO2,
		VarShareGlobalCO2,
	}
}

// ParseVariable validates a user-supplied variable name.
func ParseVariable(s string) (Variable, error) {
	v := Variable(s)
	if _, ok := variableLabels[v]; !ok {
		return "", fmt.Errorf("unknown variable %q", s)
	}
	return v, nil
}

// Label returns the human-readable axis label for the variable.
func (v Variable) Label() string {
	if l, ok := variableLabels[v]; ok {
		return l
	}
	return string(v)
}

// Value extracts the variable from a row.
func (r Row) Value(v Variable) float64 {
	switch v {
	case VarCO2:
		return r.CO2
	case VarCO2PerCapita:
		return r.CO2PerCapita
	case VarPopulation:
		return r.Population
	case VarGDP:
		return r.GDP
	case VarCO2PerGDP:
		return r.CO2PerGDP
	case VarCumulativeCO2:
		return r.CumulativeCO2
	case VarShareGlobalCO2:
		return r.ShareGlobalCO2
	}
	return 0
}
