package report

import "github.com/rshade/pumpcarbon/internal/carbon"

// Bar is one category of a bar chart.
type Bar struct {
	Label string  `json:"label" msgpack:"label"`
	Value float64 `json:"value" msgpack:"value"`
}

// BarChart is a categorical series.
type BarChart struct {
	Title string `json:"title" msgpack:"title"`
	Bars  []Bar  `json:"bars" msgpack:"bars"`
}

// Max returns the largest bar value, or 0 for an empty chart.
func (c BarChart) Max() float64 {
	var m float64
	for _, b := range c.Bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

// TrendChart is an ordered series of points.
type TrendChart struct {
	Title  string    `json:"title" msgpack:"title"`
	Points []float64 `json:"points" msgpack:"points"`
}

// LossDistribution compares energy, losses and lifetime emissions. The
// categories mix units, as the results page does.
func LossDistribution(res carbon.DerivedResults) BarChart {
	return BarChart{
		Title: "Energy & Emission Loss Distribution",
		Bars: []Bar{
			{Label: "Energy Consumption", Value: res.EnergyConsumption},
			{Label: "Friction Loss", Value: res.FrictionLoss},
			{Label: "Mechanical Loss", Value: res.MechanicalLoss},
			{Label: "Construction & Maintenance Emissions", Value: res.ConstructionMaintenanceEmissions},
		},
	}
}

// CostBreakdown splits the annual cost into energy and maintenance.
func CostBreakdown(c carbon.Costs) BarChart {
	return BarChart{
		Title: "Cost Analysis",
		Bars: []Bar{
			{Label: "Energy Cost", Value: c.Energy},
			{Label: "Maintenance Cost", Value: c.Maintenance},
		},
	}
}

// EmissionsTrend is baseline, baseline plus leakage, and total CO2 per day.
// The last two points are equal by construction.
func EmissionsTrend(res carbon.DerivedResults) TrendChart {
	return TrendChart{
		Title:  "CO2 Emissions Trend",
		Points: []float64{res.BaselineCO2, res.BaselineCO2 + res.AdditionalCO2, res.TotalCO2},
	}
}
