package carbon

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidParameters is matched by every validation failure returned from
// Calculator.Validate and Calculator.Calculate.
var ErrInvalidParameters = errors.New("invalid pump parameters")

// FieldError describes one rejected parameter.
type FieldError struct {
	Field  string  `json:"field" msgpack:"field"`
	Value  float64 `json:"value" msgpack:"value"`
	Reason string  `json:"reason" msgpack:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Field, e.Value, e.Reason)
}

// ValidationErrors collects every FieldError found in one PumpParameters.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return ErrInvalidParameters.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrInvalidParameters) succeed.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidParameters
}

type check struct {
	field string
	value float64
}

// Validate checks the physical invariants the formulas rely on.
// It returns nil or a ValidationErrors listing every violation.
func (c *Calculator) Validate(p PumpParameters) error {
	var errs ValidationErrors

	all := []check{
		{"power_rating", p.PowerRating},
		{"operating_hours", p.OperatingHours},
		{"flow_rate", p.FlowRate},
		{"head", p.Head},
		{"pipe_length", p.PipeLength},
		{"pipe_diameter", p.PipeDiameter},
		{"flow_velocity", p.FlowVelocity},
		{"efficiency", p.Efficiency},
		{"leakage_rate", p.LeakageRate},
		{"pressure_boost", p.PressureBoost},
		{"static_head", p.StaticHead},
		{"dynamic_head", p.DynamicHead},
		{"mechanical_efficiency", p.MechanicalEfficiency},
		{"emission_factor", p.EmissionFactor},
		{"construction_emissions", p.ConstructionEmissions},
		{"maintenance_emissions", p.MaintenanceEmissions},
		{"pipeline_age", p.PipelineAge},
		{"energy_cost", p.EnergyCost},
		{"maintenance_cost", p.MaintenanceCost},
	}

	// Every input is a non-negative, finite quantity. Fields failing here are
	// skipped by the range checks below so each field is reported once.
	rejected := make(map[string]bool)
	for _, ch := range all {
		switch {
		case math.IsNaN(ch.value) || math.IsInf(ch.value, 0):
			errs = append(errs, FieldError{Field: ch.field, Value: ch.value, Reason: "must be a finite number"})
			rejected[ch.field] = true
		case ch.value < 0:
			errs = append(errs, FieldError{Field: ch.field, Value: ch.value, Reason: "must not be negative"})
			rejected[ch.field] = true
		}
	}

	if p.PipeDiameter == 0 {
		errs = append(errs, FieldError{Field: "pipe_diameter", Value: p.PipeDiameter, Reason: "must be greater than zero"})
	}
	if !rejected["operating_hours"] && p.OperatingHours > MaxOperatingHours {
		errs = append(errs, FieldError{Field: "operating_hours", Value: p.OperatingHours, Reason: "must not exceed 24 hours per day"})
	}
	for _, ch := range []check{
		{"efficiency", p.Efficiency},
		{"leakage_rate", p.LeakageRate},
		{"mechanical_efficiency", p.MechanicalEfficiency},
	} {
		if !rejected[ch.field] && ch.value > percent {
			errs = append(errs, FieldError{Field: ch.field, Value: ch.value, Reason: "percentage must be within [0, 100]"})
		}
	}

	switch p.Variant {
	case VariantNormal, VariantBooster, "":
	default:
		errs = append(errs, FieldError{Field: "variant", Reason: fmt.Sprintf("unknown pump variant %q", p.Variant)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// checkResults rejects a result set containing NaN or ±Inf. Inputs that pass
// Validate can still overflow float64 when they are extremely large.
func checkResults(res DerivedResults) error {
	var errs ValidationErrors
	all := []check{
		{"energy_consumption_kwh_day", res.EnergyConsumption},
		{"useful_energy_kwh_day", res.UsefulEnergy},
		{"friction_loss_m", res.FrictionLoss},
		{"head_loss_m", res.HeadLoss},
		{"mechanical_loss_kw", res.MechanicalLoss},
		{"baseline_co2_t_day", res.BaselineCO2},
		{"additional_co2_t_day", res.AdditionalCO2},
		{"total_co2_t_day", res.TotalCO2},
		{"construction_maintenance_emissions_t", res.ConstructionMaintenanceEmissions},
		{"volumetric_flow_m3s", res.VolumetricFlow},
		{"costs.energy", res.Costs.Energy},
		{"costs.maintenance", res.Costs.Maintenance},
		{"costs.total", res.Costs.Total},
	}
	if res.Leakage != nil {
		all = append(all,
			check{"leakage.increased_operating_hours", res.Leakage.IncreasedOperatingHours},
			check{"leakage.additional_energy_kwh_day", res.Leakage.AdditionalEnergy},
			check{"leakage.additional_co2_t_day", res.Leakage.AdditionalCO2},
		)
	}
	for _, ch := range all {
		if math.IsNaN(ch.value) || math.IsInf(ch.value, 0) {
			errs = append(errs, FieldError{Field: ch.field, Value: ch.value, Reason: "result overflows float64; inputs are out of range"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
