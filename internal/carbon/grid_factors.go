package carbon

import "sort"

// EmissionFactorPresets maps electricity grid names to emission factors in
// metric tons CO2 per kWh, for operators who know their grid but not its
// factor.
//
// Source: Cloud Carbon Footprint grid coefficients (2024 vintage).
// Reference: https://www.cloudcarbonfootprint.org/docs/methodology
var EmissionFactorPresets = map[string]float64{
	"default":   DefaultEmissionFactor,
	"us-serc":   0.000379,  // Virginia
	"us-rfc":    0.000411,  // Ohio
	"us-wecc":   0.000322,  // California, Oregon
	"canada":    0.00012,   // Quebec, Ontario
	"ireland":   0.0002786, // Ireland
	"sweden":    0.0000088, // Sweden (hydro, nuclear)
	"singapore": 0.000408,  // Singapore
	"australia": 0.00079,   // New South Wales
	"japan":     0.000506,  // Tokyo
	"india":     0.000708,  // Maharashtra
	"brazil":    0.0000617, // São Paulo (hydro)
}

// EmissionFactor returns the preset factor for grid.
// If grid is not listed, DefaultEmissionFactor is returned along with false.
func EmissionFactor(grid string) (float64, bool) {
	if factor, ok := EmissionFactorPresets[grid]; ok {
		return factor, true
	}
	return DefaultEmissionFactor, false
}

// EmissionGrids returns the preset names in sorted order.
func EmissionGrids() []string {
	names := make([]string, 0, len(EmissionFactorPresets))
	for name := range EmissionFactorPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
