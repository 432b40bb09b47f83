package scenario

import (
	"slices"

	"github.com/rshade/pumpcarbon/internal/carbon"
)

// Unit names offered by the input forms. Several of these have no entry in
// the default conversion table and pass through unconverted.
const (
	unitKW         = "kW"
	unitHP         = "hp"
	unitM3H        = "m³/h"
	unitLS         = "L/s"
	unitM          = "m"
	unitFt         = "ft"
	unitMM         = "mm"
	unitBar        = "bar"
	unitPsi        = "psi"
	unitMS         = "m/s"
	unitHours      = "h"
	unitPercent    = "%"
	unitTonsKWh    = "metric tons/kWh"
	unitTons       = "metric tons"
	unitTonsYear   = "metric tons/year"
	unitYears      = "years"
	unitCostKWh    = "currency/kWh"
	unitCostYear   = "currency/year"
	unitCelsius    = "Celsius"
	unitFahrenheit = "Fahrenheit"
	unitCount      = "count"
)

// Limits is the inclusive range an input form clamps a value to, in the
// field's canonical unit.
type Limits struct {
	Min float64 `json:"min" msgpack:"min"`
	Max float64 `json:"max" msgpack:"max"`
}

// Field describes one recognised input.
type Field struct {
	// Key identifies the field in scenario documents.
	Key string `json:"key" msgpack:"key"`

	// Label is the form label.
	Label string `json:"label" msgpack:"label"`

	// Unit is the canonical unit the calculator expects.
	Unit string `json:"unit" msgpack:"unit"`

	// Units are the units an operator may enter the value in. The first is Unit.
	Units []string `json:"units" msgpack:"units"`

	// Limits is nil when the form imposes no range.
	Limits *Limits `json:"limits,omitempty" msgpack:"limits,omitempty"`

	// Default is used when the scenario omits the field.
	Default float64 `json:"default" msgpack:"default"`

	// Integer fields are rounded to whole numbers.
	Integer bool `json:"integer,omitempty" msgpack:"integer,omitempty"`

	// Description explains the field on the reference page.
	Description string `json:"description" msgpack:"description"`

	// Variants restricts the field to some pump variants; empty means all.
	Variants []carbon.Variant `json:"variants,omitempty" msgpack:"variants,omitempty"`
}

// AppliesTo reports whether the field is recognised for variant v.
func (f Field) AppliesTo(v carbon.Variant) bool {
	return len(f.Variants) == 0 || slices.Contains(f.Variants, v)
}

// AcceptsUnit reports whether unit is one of the field's selectable units.
// An empty unit means the canonical unit.
func (f Field) AcceptsUnit(unit string) bool {
	return unit == "" || slices.Contains(f.Units, unit)
}

func limits(min, max float64) *Limits {
	return &Limits{Min: min, Max: max}
}

// parameterFields is the ordered catalog of pump-level inputs. The first
// entries are the ones the reference page documents.
var parameterFields = []Field{
	{
		Key: "power_rating", Label: "Power Rating", Unit: unitKW, Units: []string{unitKW, unitHP},
		Limits: limits(1, 500), Default: 100,
		Description: "The electrical power required to operate the pump at full capacity.",
	},
	{
		Key: "operating_hours", Label: "Operating Hours per Day", Unit: unitHours, Units: []string{unitHours},
		Limits: limits(0, 24), Default: 8,
		Description: "Number of hours the pump operates per day.",
	},
	{
		Key: "efficiency", Label: "Pump Efficiency", Unit: unitPercent, Units: []string{unitPercent},
		Limits: limits(0, 100), Default: 80,
		Description: "Percentage of electrical energy converted into hydraulic energy.",
	},
	{
		Key: "leakage_rate", Label: "Leakage Rate", Unit: unitPercent, Units: []string{unitPercent},
		Limits: limits(0, 100), Default: 0,
		Description: "Water leakage percentage from the system.",
	},
	{
		Key: "pressure_boost", Label: "Pressure Boost", Unit: unitBar, Units: []string{unitBar, unitPsi},
		Limits: limits(0, 10), Default: 2,
		Description: "Extra pressure applied by the booster pump.",
		Variants:    []carbon.Variant{carbon.VariantBooster},
	},
	{
		Key: "pipe_length", Label: "Pipe Length", Unit: unitM, Units: []string{unitM},
		Limits: limits(1, 1000), Default: 500,
		Description: "Length of the pipeline.",
	},
	{
		Key: "pipe_diameter", Label: "Pipe Diameter", Unit: unitM, Units: []string{unitM, unitMM},
		Limits: limits(0.1, 5), Default: 0.5,
		Description: "Diameter of the pipe, impacting flow and friction losses.",
	},
	{
		Key: "flow_velocity", Label: "Flow Velocity", Unit: unitMS, Units: []string{unitMS},
		Limits: limits(0.1, 10), Default: 2,
		Description: "Speed of the fluid inside the pipeline.",
	},
	{
		Key: "static_head", Label: "Static Head", Unit: unitM, Units: []string{unitM},
		Limits: limits(0, 100), Default: 50,
		Description: "Vertical lift the pump must achieve.",
	},
	{
		Key: "dynamic_head", Label: "Dynamic Head", Unit: unitM, Units: []string{unitM},
		Limits: limits(0, 100), Default: 10,
		Description: "Resistance due to motion in the pipeline.",
	},
	{
		Key: "mechanical_efficiency", Label: "Mechanical Efficiency", Unit: unitPercent, Units: []string{unitPercent},
		Limits: limits(0, 100), Default: 90,
		Description: "Efficiency of the pump's mechanical system.",
	},
	{
		Key: "flow_rate", Label: "Flow Rate", Unit: unitM3H, Units: []string{unitM3H, unitLS},
		Limits: limits(1, 1000), Default: 100,
		Description: "Volume of water moved per hour.",
	},
	{
		Key: "head", Label: "Head", Unit: unitM, Units: []string{unitM, unitFt},
		Limits: limits(1, 200), Default: 30,
		Description: "Pressure head the pump delivers.",
	},
	{
		Key: "fluid_temperature", Label: "Fluid Temperature", Unit: unitCelsius, Units: []string{unitCelsius, unitFahrenheit},
		Limits: limits(-50, 150), Default: 25,
		Description: "Temperature of the pumped fluid.",
	},
	{
		Key: "emission_factor", Label: "CO2 Emission Factor", Unit: unitTonsKWh, Units: []string{unitTonsKWh},
		Default:     carbon.DefaultEmissionFactor,
		Description: "CO2 emission factor of the electricity supply.",
	},
	{
		Key: "construction_emissions", Label: "Construction Emissions", Unit: unitTons, Units: []string{unitTons},
		Default:     500,
		Description: "One-off emissions from building the pipeline.",
	},
	{
		Key: "maintenance_emissions", Label: "Maintenance Emissions", Unit: unitTonsYear, Units: []string{unitTonsYear},
		Default:     10,
		Description: "Emissions from maintaining the pipeline each year.",
	},
	{
		Key: "pipeline_age", Label: "Pipeline Age", Unit: unitYears, Units: []string{unitYears},
		Limits: limits(0, 100), Default: 10, Integer: true,
		Description: "Age of the pipeline in years.",
	},
	{
		Key: "energy_cost", Label: "Energy Cost", Unit: unitCostKWh, Units: []string{unitCostKWh},
		Limits: limits(0, 10), Default: 0.1,
		Description: "Price of electricity.",
	},
	{
		Key: "maintenance_cost", Label: "Maintenance Cost", Unit: unitCostYear, Units: []string{unitCostYear},
		Limits: limits(0, 10000), Default: 1000,
		Description: "Recurring maintenance cost.",
	},
}

// detailFields is the catalog of subtype-specific inputs per distribution pump.
var detailFields = map[Distribution][]Field{
	Centrifugal: {
		{Key: "flow_rate", Label: "Flow Rate", Unit: unitM3H, Units: []string{unitM3H, unitLS}, Limits: limits(1, 1000), Default: 100,
			Description: "Flow rate through the impeller."},
		{Key: "head", Label: "Head", Unit: unitM, Units: []string{unitM}, Limits: limits(1, 200), Default: 30,
			Description: "Pump head in meters."},
		{Key: "impeller_diameter", Label: "Impeller Diameter", Unit: unitMM, Units: []string{unitMM, unitM}, Limits: limits(50, 500), Default: 200,
			Description: "Diameter of the impeller."},
	},
	Submersible: {
		{Key: "submersion_depth", Label: "Submersion Depth", Unit: unitM, Units: []string{unitM}, Limits: limits(1, 500), Default: 100,
			Description: "Depth at which the pump is submerged."},
		{Key: "discharge_head", Label: "Discharge Head", Unit: unitM, Units: []string{unitM}, Limits: limits(1, 200), Default: 50,
			Description: "Head on the discharge side."},
	},
	EndSuction: {
		{Key: "suction_lift", Label: "Suction Lift", Unit: unitM, Units: []string{unitM}, Limits: limits(1, 100), Default: 10,
			Description: "Vertical lift on the suction side."},
		{Key: "discharge_pressure", Label: "Discharge Pressure", Unit: unitBar, Units: []string{unitBar, unitPsi}, Limits: limits(1, 50), Default: 5,
			Description: "Pressure on the discharge side."},
	},
	HorizontalSplitCase: {
		{Key: "npsh", Label: "NPSH (Net Positive Suction Head)", Unit: unitM, Units: []string{unitM}, Limits: limits(0.1, 50), Default: 3,
			Description: "Net positive suction head."},
		{Key: "power_rating", Label: "Power Rating", Unit: unitKW, Units: []string{unitKW, unitHP}, Limits: limits(1, 500), Default: 100,
			Description: "Rated power of the split-case pump."},
	},
	VerticalTurbine: {
		{Key: "shaft_length", Label: "Shaft Length", Unit: unitM, Units: []string{unitM}, Limits: limits(1, 100), Default: 50,
			Description: "Length of the line shaft."},
		{Key: "impeller_stages", Label: "Number of Impeller Stages", Unit: unitCount, Units: []string{unitCount}, Limits: limits(1, 10), Default: 3, Integer: true,
			Description: "Number of impeller stages in the bowl assembly."},
	},
	Inline: {
		{Key: "motor_efficiency", Label: "Motor Efficiency", Unit: unitPercent, Units: []string{unitPercent}, Limits: limits(50, 100), Default: 90,
			Description: "Efficiency of the drive motor."},
	},
	Multistage: {
		{Key: "stage_pressure", Label: "Pressure per Stage", Unit: unitBar, Units: []string{unitBar, unitPsi}, Limits: limits(1, 10), Default: 2,
			Description: "Pressure added by each stage."},
		{Key: "number_of_stages", Label: "Number of Stages", Unit: unitCount, Units: []string{unitCount}, Limits: limits(1, 10), Default: 4, Integer: true,
			Description: "Total number of stages."},
	},
}

// Fields returns the pump-level fields recognised for variant v, in catalog order.
func Fields(v carbon.Variant) []Field {
	out := make([]Field, 0, len(parameterFields))
	for _, f := range parameterFields {
		if f.AppliesTo(v) {
			out = append(out, f)
		}
	}
	return out
}

// DetailFields returns the subtype-specific fields of a distribution pump.
func DetailFields(d Distribution) []Field {
	return slices.Clone(detailFields[d])
}

func findField(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
