package carbon

// PumpEstimator derives the full result set for a pump installation.
type PumpEstimator interface {
	// Calculate validates params and evaluates every formula.
	// Returns an error matching ErrInvalidParameters if validation fails.
	Calculate(params PumpParameters) (DerivedResults, error)
}

// Calculator implements PumpEstimator with a fixed set of Constants.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	constants Constants
}

// NewCalculator creates a calculator using the given constants.
func NewCalculator(constants Constants) *Calculator {
	return &Calculator{constants: constants}
}

// Constants returns the constants the calculator was built with.
func (c *Calculator) Constants() Constants {
	return c.constants
}

// Calculate evaluates the pump performance formulas for one request.
//
// The calculation proceeds as follows:
//  1. Validate params (lengths, diameter, percentages, hours).
//  2. Energy (kWh/day) from the normal or booster formula, by variant.
//  3. Useful energy = energy × efficiency; baseline CO2 = useful energy × factor.
//  4. When leakage > 0: extended hours, additional energy and additional CO2.
//  5. Friction loss, head loss, mechanical loss (from the power rating),
//     construction and maintenance emissions, volumetric flow and costs.
//  6. Reject the result set if any value overflowed to ±Inf or NaN.
func (c *Calculator) Calculate(params PumpParameters) (DerivedResults, error) {
	if err := c.Validate(params); err != nil {
		return DerivedResults{}, err
	}

	var energy float64
	if params.Variant == VariantBooster {
		energy = c.EnergyConsumptionBooster(params.PowerRating, params.OperatingHours, params.PressureBoost)
	} else {
		energy = c.EnergyConsumptionNormal(params.PowerRating, params.OperatingHours)
	}

	useful := c.UsefulEnergy(energy, params.Efficiency)
	baseline := c.CO2Emissions(useful, params.EmissionFactor)

	res := DerivedResults{
		EnergyConsumption: energy,
		UsefulEnergy:      useful,
		FrictionLoss:      c.FrictionLoss(params.PipeLength, params.PipeDiameter, params.FlowVelocity),
		HeadLoss:          c.HeadLoss(params.StaticHead, params.DynamicHead),
		MechanicalLoss:    c.MechanicalLoss(params.PowerRating, params.MechanicalEfficiency),
		BaselineCO2:       baseline,
		ConstructionMaintenanceEmissions: c.ConstructionMaintenanceEmissions(
			params.ConstructionEmissions,
			params.MaintenanceEmissions,
			params.PipelineAge,
		),
		VolumetricFlow: c.VolumetricFlow(params.FlowVelocity, params.PipeDiameter),
		Costs:          c.AnnualCosts(energy, params.EnergyCost, params.MaintenanceCost),
	}

	if params.LeakageRate > 0 {
		increased := c.IncreasedOperatingHours(params.OperatingHours, params.LeakageRate)
		additional := c.AdditionalEnergyConsumption(params.PowerRating, increased, params.OperatingHours)
		res.Leakage = &LeakageImpact{
			IncreasedOperatingHours: increased,
			AdditionalEnergy:        additional,
			AdditionalCO2:           c.CO2Emissions(additional, params.EmissionFactor),
		}
		res.AdditionalCO2 = res.Leakage.AdditionalCO2
	}
	res.TotalCO2 = res.BaselineCO2 + res.AdditionalCO2

	if err := checkResults(res); err != nil {
		return DerivedResults{}, err
	}
	return res, nil
}
