package carbon

// Variant selects the energy formula.
type Variant string

const (
	// VariantNormal is a water distribution pump: energy = power × hours.
	VariantNormal Variant = "normal"

	// VariantBooster is a booster pump: energy is scaled by the pressure boost.
	VariantBooster Variant = "booster"
)

// PumpParameters contains the calculator inputs, already converted to the
// canonical units noted on each field.
type PumpParameters struct {
	// Variant selects the normal or booster energy formula.
	Variant Variant `json:"variant" msgpack:"variant"`

	// PowerRating is the electrical power at full capacity in kW.
	PowerRating float64 `json:"power_rating_kw" msgpack:"power_rating_kw"`

	// OperatingHours is the daily run time in hours (0 to 24).
	OperatingHours float64 `json:"operating_hours" msgpack:"operating_hours"`

	// FlowRate in m³/h.
	FlowRate float64 `json:"flow_rate_m3h" msgpack:"flow_rate_m3h"`

	// Head is the pressure head in m.
	Head float64 `json:"head_m" msgpack:"head_m"`

	// PipeLength in m.
	PipeLength float64 `json:"pipe_length_m" msgpack:"pipe_length_m"`

	// PipeDiameter in m. Must be positive.
	PipeDiameter float64 `json:"pipe_diameter_m" msgpack:"pipe_diameter_m"`

	// FlowVelocity in m/s.
	FlowVelocity float64 `json:"flow_velocity_ms" msgpack:"flow_velocity_ms"`

	// Efficiency is the pump efficiency in percent.
	Efficiency float64 `json:"efficiency_pct" msgpack:"efficiency_pct"`

	// LeakageRate is the pipeline leakage in percent.
	LeakageRate float64 `json:"leakage_rate_pct" msgpack:"leakage_rate_pct"`

	// PressureBoost in bar. Ignored for VariantNormal.
	PressureBoost float64 `json:"pressure_boost_bar" msgpack:"pressure_boost_bar"`

	// StaticHead in m.
	StaticHead float64 `json:"static_head_m" msgpack:"static_head_m"`

	// DynamicHead in m.
	DynamicHead float64 `json:"dynamic_head_m" msgpack:"dynamic_head_m"`

	// MechanicalEfficiency in percent.
	MechanicalEfficiency float64 `json:"mechanical_efficiency_pct" msgpack:"mechanical_efficiency_pct"`

	// EmissionFactor in metric tons CO2 per kWh.
	EmissionFactor float64 `json:"emission_factor_t_per_kwh" msgpack:"emission_factor_t_per_kwh"`

	// ConstructionEmissions in metric tons.
	ConstructionEmissions float64 `json:"construction_emissions_t" msgpack:"construction_emissions_t"`

	// MaintenanceEmissions in metric tons per year of pipeline age.
	MaintenanceEmissions float64 `json:"maintenance_emissions_t" msgpack:"maintenance_emissions_t"`

	// PipelineAge in years.
	PipelineAge float64 `json:"pipeline_age_years" msgpack:"pipeline_age_years"`

	// EnergyCost in currency units per kWh.
	EnergyCost float64 `json:"energy_cost_per_kwh" msgpack:"energy_cost_per_kwh"`

	// MaintenanceCost in currency units, annualised with DaysPerYear.
	MaintenanceCost float64 `json:"maintenance_cost" msgpack:"maintenance_cost"`
}

// LeakageImpact holds the extra operation caused by pipeline leakage.
type LeakageImpact struct {
	// IncreasedOperatingHours in hours/day.
	IncreasedOperatingHours float64 `json:"increased_operating_hours" msgpack:"increased_operating_hours"`

	// AdditionalEnergy in kWh/day.
	AdditionalEnergy float64 `json:"additional_energy_kwh_day" msgpack:"additional_energy_kwh_day"`

	// AdditionalCO2 in metric tons/day.
	AdditionalCO2 float64 `json:"additional_co2_t_day" msgpack:"additional_co2_t_day"`
}

// Costs is the annual cost analysis.
type Costs struct {
	Energy      float64 `json:"energy" msgpack:"energy"`
	Maintenance float64 `json:"maintenance" msgpack:"maintenance"`
	Total       float64 `json:"total" msgpack:"total"`
}

// DerivedResults is the complete output of one calculation.
type DerivedResults struct {
	// EnergyConsumption in kWh/day.
	EnergyConsumption float64 `json:"energy_consumption_kwh_day" msgpack:"energy_consumption_kwh_day"`

	// UsefulEnergy in kWh/day after pump efficiency.
	UsefulEnergy float64 `json:"useful_energy_kwh_day" msgpack:"useful_energy_kwh_day"`

	// FrictionLoss in m.
	FrictionLoss float64 `json:"friction_loss_m" msgpack:"friction_loss_m"`

	// HeadLoss is the total of static and dynamic head in m.
	HeadLoss float64 `json:"head_loss_m" msgpack:"head_loss_m"`

	// MechanicalLoss in kW.
	MechanicalLoss float64 `json:"mechanical_loss_kw" msgpack:"mechanical_loss_kw"`

	// BaselineCO2 in metric tons/day, from useful energy.
	BaselineCO2 float64 `json:"baseline_co2_t_day" msgpack:"baseline_co2_t_day"`

	// AdditionalCO2 in metric tons/day caused by leakage. Zero without leakage.
	AdditionalCO2 float64 `json:"additional_co2_t_day" msgpack:"additional_co2_t_day"`

	// TotalCO2 in metric tons/day.
	TotalCO2 float64 `json:"total_co2_t_day" msgpack:"total_co2_t_day"`

	// ConstructionMaintenanceEmissions in metric tons.
	ConstructionMaintenanceEmissions float64 `json:"construction_maintenance_emissions_t" msgpack:"construction_maintenance_emissions_t"`

	// VolumetricFlow through the pipe in m³/s.
	VolumetricFlow float64 `json:"volumetric_flow_m3s" msgpack:"volumetric_flow_m3s"`

	// Leakage is nil when the leakage rate is zero.
	Leakage *LeakageImpact `json:"leakage,omitempty" msgpack:"leakage,omitempty"`

	// Costs is the annual cost analysis.
	Costs Costs `json:"costs" msgpack:"costs"`
}
