package carbon

import "math"

// The package-level functions evaluate each formula with DefaultConstants.
// None of them validate their arguments: a zero pipe diameter yields +Inf
// (or NaN for 0/0) from FrictionLoss, and out-of-range percentages are used
// as given. Calculator.Calculate is the validating entry point.

var defaultCalculator = NewCalculator(DefaultConstants())

// EnergyConsumptionNormal returns power × hours in kWh/day.
func EnergyConsumptionNormal(powerKW, hours float64) float64 {
	return defaultCalculator.EnergyConsumptionNormal(powerKW, hours)
}

// EnergyConsumptionBooster returns power × hours × (1 + boost/10) in kWh/day.
func EnergyConsumptionBooster(powerKW, hours, boostBar float64) float64 {
	return defaultCalculator.EnergyConsumptionBooster(powerKW, hours, boostBar)
}

// UsefulEnergy returns the share of energy converted at the given efficiency (%).
func UsefulEnergy(energyKWh, efficiencyPct float64) float64 {
	return defaultCalculator.UsefulEnergy(energyKWh, efficiencyPct)
}

// CO2Emissions returns energy × emission factor in metric tons.
func CO2Emissions(energyKWh, factor float64) float64 {
	return defaultCalculator.CO2Emissions(energyKWh, factor)
}

// IncreasedOperatingHours models leakage as extended run time.
func IncreasedOperatingHours(hours, leakagePct float64) float64 {
	return defaultCalculator.IncreasedOperatingHours(hours, leakagePct)
}

// AdditionalEnergyConsumption returns power × (increasedHours − hours).
func AdditionalEnergyConsumption(powerKW, increasedHours, hours float64) float64 {
	return defaultCalculator.AdditionalEnergyConsumption(powerKW, increasedHours, hours)
}

// FrictionLoss returns the Darcy–Weisbach head loss f × (L/D) × v²/(2g) in m.
func FrictionLoss(lengthM, diameterM, velocityMS float64) float64 {
	return defaultCalculator.FrictionLoss(lengthM, diameterM, velocityMS)
}

// HeadLoss returns static + dynamic head in m.
func HeadLoss(staticHead, dynamicHead float64) float64 {
	return defaultCalculator.HeadLoss(staticHead, dynamicHead)
}

// MechanicalLoss returns the power lost to mechanical inefficiency in kW.
func MechanicalLoss(inputPowerKW, mechanicalEfficiencyPct float64) float64 {
	return defaultCalculator.MechanicalLoss(inputPowerKW, mechanicalEfficiencyPct)
}

// ConstructionMaintenanceEmissions returns construction + maintenance × age.
func ConstructionMaintenanceEmissions(construction, maintenancePerYear, ageYears float64) float64 {
	return defaultCalculator.ConstructionMaintenanceEmissions(construction, maintenancePerYear, ageYears)
}

// VolumetricFlow returns v × π(D/2)² in m³/s.
func VolumetricFlow(velocityMS, diameterM float64) float64 {
	return defaultCalculator.VolumetricFlow(velocityMS, diameterM)
}

// EnergyConsumptionNormal returns power × hours.
func (c *Calculator) EnergyConsumptionNormal(powerKW, hours float64) float64 {
	return powerKW * hours
}

// EnergyConsumptionBooster returns power × hours × (1 + boost/BoostScale).
// A zero boost reduces to EnergyConsumptionNormal.
func (c *Calculator) EnergyConsumptionBooster(powerKW, hours, boostBar float64) float64 {
	return powerKW * hours * (1 + boostBar/c.constants.BoostScale)
}

// UsefulEnergy returns energy × efficiency/100.
func (c *Calculator) UsefulEnergy(energyKWh, efficiencyPct float64) float64 {
	return energyKWh * (efficiencyPct / percent)
}

// CO2Emissions returns energy × factor.
func (c *Calculator) CO2Emissions(energyKWh, factor float64) float64 {
	return energyKWh * factor
}

// IncreasedOperatingHours returns hours × (1 + leakage/100).
func (c *Calculator) IncreasedOperatingHours(hours, leakagePct float64) float64 {
	return hours * (1 + leakagePct/percent)
}

// AdditionalEnergyConsumption returns power × (increasedHours − hours).
func (c *Calculator) AdditionalEnergyConsumption(powerKW, increasedHours, hours float64) float64 {
	return powerKW * (increasedHours - hours)
}

// FrictionLoss returns f × (L/D) × v² / (2g) using the configured f and g.
func (c *Calculator) FrictionLoss(lengthM, diameterM, velocityMS float64) float64 {
	return c.constants.FrictionFactor * (lengthM / diameterM) * (velocityMS * velocityMS) / (2 * c.constants.Gravity)
}

// HeadLoss returns static + dynamic.
func (c *Calculator) HeadLoss(staticHead, dynamicHead float64) float64 {
	return staticHead + dynamicHead
}

// MechanicalLoss returns inputPower × (1 − efficiency/100).
func (c *Calculator) MechanicalLoss(inputPowerKW, mechanicalEfficiencyPct float64) float64 {
	return inputPowerKW * (1 - mechanicalEfficiencyPct/percent)
}

// ConstructionMaintenanceEmissions accrues maintenance linearly over the
// pipeline age on top of the one-off construction emissions.
func (c *Calculator) ConstructionMaintenanceEmissions(construction, maintenancePerYear, ageYears float64) float64 {
	return construction + maintenancePerYear*ageYears
}

// VolumetricFlow returns v × π(D/2)².
func (c *Calculator) VolumetricFlow(velocityMS, diameterM float64) float64 {
	radius := diameterM / 2
	return velocityMS * math.Pi * radius * radius
}

// AnnualCosts annualises the daily energy bill and the maintenance cost.
// Both are multiplied by DaysPerYear.
func (c *Calculator) AnnualCosts(energyKWhPerDay, energyCostPerKWh, maintenanceCost float64) Costs {
	energy := energyCostPerKWh * energyKWhPerDay * c.constants.DaysPerYear
	maintenance := maintenanceCost * c.constants.DaysPerYear
	return Costs{
		Energy:      energy,
		Maintenance: maintenance,
		Total:       energy + maintenance,
	}
}
