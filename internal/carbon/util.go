package carbon

import (
	"math"
	"strconv"
)

// formatFloat prints whole numbers without a fraction and everything else
// with two decimals. Magnitudes beyond int range are handled too.
func formatFloat(f float64) string {
	prec := 2
	if math.Trunc(f) == f {
		prec = 0
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// Describe returns a one-line human-readable description of the installation.
func Describe(p PumpParameters) string {
	kind := "Normal pump"
	if p.Variant == VariantBooster {
		kind = "Booster pump"
	}

	desc := kind + ", " +
		formatFloat(p.PowerRating) + " kW, " +
		formatFloat(p.OperatingHours) + " hrs/day, " +
		"efficiency " + formatFloat(p.Efficiency) + "%"
	if p.Variant == VariantBooster {
		desc += ", boost " + formatFloat(p.PressureBoost) + " bar"
	}
	if p.LeakageRate > 0 {
		desc += ", leakage " + formatFloat(p.LeakageRate) + "%"
	}
	return desc
}
