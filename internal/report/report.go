// Package report renders calculation results as summary lines, chart series
// and encoded documents.
package report

import (
	"fmt"

	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/scenario"
)

// Section groups summary lines the way the results page does.
type Section string

const (
	SectionResults Section = "results"
	SectionLeakage Section = "leakage"
	SectionCost    Section = "cost"
)

// Line is one formatted result, e.g. "Friction Loss: 4.08 meters".
type Line struct {
	Section Section `json:"section" msgpack:"section"`
	Label   string  `json:"label" msgpack:"label"`
	Value   float64 `json:"value" msgpack:"value"`
	Unit    string  `json:"unit" msgpack:"unit"`
	Text    string  `json:"text" msgpack:"text"`
}

func newLine(section Section, label string, value float64, precision int, unit string) Line {
	return Line{
		Section: section,
		Label:   label,
		Value:   value,
		Unit:    unit,
		Text:    fmt.Sprintf("%s: %.*f %s", label, precision, value, unit),
	}
}

// Summary returns the result lines for a calculation in display order.
// Leakage lines appear only when the results carry a leakage impact.
func Summary(res carbon.DerivedResults, v carbon.Variant) []Line {
	baseline := "Baseline Energy Consumption (Normal Pump)"
	if v == carbon.VariantBooster {
		baseline = "Baseline Energy Consumption (with Pressure Boost)"
	}

	lines := []Line{
		newLine(SectionResults, baseline, res.EnergyConsumption, 2, "kWh/day"),
		newLine(SectionResults, "Useful Energy Considering Efficiency", res.UsefulEnergy, 2, "kWh/day"),
		newLine(SectionResults, "Friction Loss", res.FrictionLoss, 2, "meters"),
		newLine(SectionResults, "Total Head Loss", res.HeadLoss, 2, "meters"),
		newLine(SectionResults, "Mechanical Loss", res.MechanicalLoss, 2, "kW"),
		newLine(SectionResults, "Baseline CO2 Emissions", res.BaselineCO2, 4, "metric tons/day"),
	}

	if res.Leakage != nil {
		lines = append(lines,
			newLine(SectionLeakage, "Increased Operating Hours due to Leakage", res.Leakage.IncreasedOperatingHours, 2, "hours/day"),
			newLine(SectionLeakage, "Additional Energy Consumption due to Leakage", res.Leakage.AdditionalEnergy, 2, "kWh/day"),
			newLine(SectionLeakage, "Additional CO2 Emissions due to Leakage", res.Leakage.AdditionalCO2, 4, "metric tons/day"),
		)
	}

	return append(lines,
		newLine(SectionResults, "Total CO2 Emissions (with Leakage)", res.TotalCO2, 4, "metric tons/day"),
		newLine(SectionResults, "Total Construction and Maintenance Emissions", res.ConstructionMaintenanceEmissions, 2, "metric tons"),
		newLine(SectionCost, "Total Annual Cost", res.Costs.Total, 2, "currency units"),
	)
}

// Document bundles everything produced for one scenario.
type Document struct {
	Title       string `json:"title" msgpack:"title"`
	Description string `json:"description" msgpack:"description"`

	Variant      carbon.Variant        `json:"variant" msgpack:"variant"`
	Distribution scenario.Distribution `json:"distribution,omitempty" msgpack:"distribution,omitempty"`

	Params           carbon.PumpParameters `json:"params" msgpack:"params"`
	Details          scenario.Details      `json:"details,omitempty" msgpack:"details,omitempty"`
	FluidTemperature float64               `json:"fluid_temperature_c" msgpack:"fluid_temperature_c"`

	Results carbon.DerivedResults `json:"results" msgpack:"results"`
	Lines   []Line                `json:"lines" msgpack:"lines"`

	LossDistribution BarChart   `json:"loss_distribution" msgpack:"loss_distribution"`
	CostBreakdown    BarChart   `json:"cost_breakdown" msgpack:"cost_breakdown"`
	EmissionsTrend   TrendChart `json:"emissions_trend" msgpack:"emissions_trend"`

	Notices []scenario.Notice `json:"notices,omitempty" msgpack:"notices,omitempty"`
}

// New assembles the report document for a built scenario and its results.
func New(built scenario.Built, res carbon.DerivedResults) Document {
	title := scenario.DisplayName(built.Variant)
	if built.Distribution != "" {
		title += " / " + built.Distribution.String()
	}
	return Document{
		Title:            title,
		Description:      carbon.Describe(built.Params),
		Variant:          built.Variant,
		Distribution:     built.Distribution,
		Params:           built.Params,
		Details:          built.Details,
		FluidTemperature: built.FluidTemperature,
		Results:          res,
		Lines:            Summary(res, built.Variant),
		LossDistribution: LossDistribution(res),
		CostBreakdown:    CostBreakdown(res.Costs),
		EmissionsTrend:   EmissionsTrend(res),
		Notices:          built.Notices,
	}
}
