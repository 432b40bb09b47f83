package scenario

import "testing"

// BenchmarkBuild measures normalising a scenario that mixes converted,
// passed-through and clamped inputs.
func BenchmarkBuild(b *testing.B) {
	builder := newTestBuilder()
	doc := Document{
		Pump:         "normal",
		Distribution: "vertical-turbine",
		EmissionGrid: "us-rfc",
		Values: map[string]Quantity{
			"power_rating":      {Value: 150, Unit: "hp"},
			"flow_rate":         {Value: 30, Unit: "L/s"},
			"operating_hours":   {Value: 30},
			"fluid_temperature": {Value: 70, Unit: "Fahrenheit"},
		},
		Details: map[string]Quantity{"impeller_stages": {Value: 5}},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(doc); err != nil {
			b.Fatal(err)
		}
	}
}
