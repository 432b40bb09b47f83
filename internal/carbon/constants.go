// Package carbon derives energy, hydraulic-loss and CO2 emission figures for
// water-pump installations from already unit-normalised inputs.
package carbon

const (
	// DefaultFrictionFactor is the Darcy friction factor assumed for every
	// pipe. It is a fixed placeholder, not derived from Reynolds number or
	// wall roughness.
	DefaultFrictionFactor = 0.02

	// StandardGravity is the gravitational acceleration in m/s².
	StandardGravity = 9.81

	// DefaultBoostScale divides the booster pressure (bar) in the booster
	// energy formula: energy × (1 + boost/DefaultBoostScale). Empirical.
	DefaultBoostScale = 10.0

	// DaysPerYear annualises daily figures in the cost analysis.
	DaysPerYear = 365.0

	// DefaultEmissionFactor is the grid emission factor offered when the
	// operator does not supply one, in metric tons CO2 per kWh.
	DefaultEmissionFactor = 0.000699

	// MaxOperatingHours bounds operating hours per day.
	MaxOperatingHours = 24.0

	percent = 100.0
)

// Constants holds the empirical constants used by the formulas.
// The values are simplifications; they are configurable so that alternate
// assumptions can be evaluated without editing the formulas.
type Constants struct {
	// FrictionFactor is the Darcy friction factor f (dimensionless).
	FrictionFactor float64 `json:"friction_factor" yaml:"friction_factor"`

	// Gravity is g in m/s².
	Gravity float64 `json:"gravity" yaml:"gravity"`

	// BoostScale is the divisor applied to the booster pressure in bar.
	BoostScale float64 `json:"boost_scale" yaml:"boost_scale"`

	// DaysPerYear annualises daily costs.
	DaysPerYear float64 `json:"days_per_year" yaml:"days_per_year"`
}

// DefaultConstants returns the constants of the reference calculator.
func DefaultConstants() Constants {
	return Constants{
		FrictionFactor: DefaultFrictionFactor,
		Gravity:        StandardGravity,
		BoostScale:     DefaultBoostScale,
		DaysPerYear:    DaysPerYear,
	}
}
