package scenario

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/units"
)

func newTestBuilder(opts ...Option) *Builder {
	conv := units.NewConverter(units.DefaultTable(), zerolog.Nop())
	return NewBuilder(conv, zerolog.Nop(), opts...)
}

func TestBuild_EmptyDocumentUsesDefaults(t *testing.T) {
	built, err := newTestBuilder().Build(Document{})
	require.NoError(t, err)

	assert.Equal(t, carbon.VariantNormal, built.Variant)
	assert.Equal(t, Centrifugal, built.Distribution)
	assert.Empty(t, built.Notices)

	p := built.Params
	assert.Equal(t, 100.0, p.PowerRating)
	assert.Equal(t, 8.0, p.OperatingHours)
	assert.Equal(t, 80.0, p.Efficiency)
	assert.Equal(t, 0.0, p.LeakageRate)
	assert.Equal(t, 0.0, p.PressureBoost, "normal pumps have no boost")
	assert.Equal(t, 500.0, p.PipeLength)
	assert.Equal(t, 0.5, p.PipeDiameter)
	assert.Equal(t, 2.0, p.FlowVelocity)
	assert.Equal(t, 50.0, p.StaticHead)
	assert.Equal(t, 10.0, p.DynamicHead)
	assert.Equal(t, 90.0, p.MechanicalEfficiency)
	assert.Equal(t, carbon.DefaultEmissionFactor, p.EmissionFactor)
	assert.Equal(t, 500.0, p.ConstructionEmissions)
	assert.Equal(t, 10.0, p.MaintenanceEmissions)
	assert.Equal(t, 10.0, p.PipelineAge)
	assert.Equal(t, 25.0, built.FluidTemperature)

	assert.Equal(t, CentrifugalDetails{FlowRate: 100, Head: 30, ImpellerDiameter: 200}, built.Details)
}

func TestBuild_DefaultsProduceTheReferenceScenario(t *testing.T) {
	built, err := newTestBuilder().Build(Document{})
	require.NoError(t, err)

	res, err := carbon.NewCalculator(carbon.DefaultConstants()).Calculate(built.Params)
	require.NoError(t, err)
	assert.Equal(t, 800.0, res.EnergyConsumption)
	assert.InDelta(t, 0.44736, res.BaselineCO2, 1e-9)
	assert.InDelta(t, 4.0775, res.FrictionLoss, 1e-4)
	assert.Equal(t, 600.0, res.ConstructionMaintenanceEmissions)
}

func TestBuild_BoosterFromFile(t *testing.T) {
	doc, err := Load("testdata/booster.yaml")
	require.NoError(t, err)

	built, err := newTestBuilder().Build(doc)
	require.NoError(t, err)

	assert.Equal(t, carbon.VariantBooster, built.Variant)
	assert.Empty(t, built.Distribution)
	assert.Nil(t, built.Details)
	assert.Empty(t, built.Notices)

	p := built.Params
	assert.Equal(t, carbon.VariantBooster, p.Variant)
	assert.InDelta(t, 134.1*0.7457, p.PowerRating, 1e-9)
	assert.Equal(t, 3.0, p.PressureBoost)
	assert.Equal(t, 15.0, p.LeakageRate)
	assert.Equal(t, 0.000322, p.EmissionFactor)
}

func TestBuild_PassThroughIsReported(t *testing.T) {
	doc := Document{
		Pump: "normal",
		Values: map[string]Quantity{
			"flow_rate":     {Value: 20, Unit: "L/s"},
			"pipe_diameter": {Value: 0.3, Unit: "mm"},
		},
	}

	built, err := newTestBuilder().Build(doc)
	require.NoError(t, err)

	// The default table has no "L/s to m³/h" or "mm to m" entries.
	assert.Equal(t, 20.0, built.Params.FlowRate)
	assert.Equal(t, 0.3, built.Params.PipeDiameter)

	require.Len(t, built.Notices, 2)
	assert.Equal(t, "flow_rate", built.Notices[0].Field)
	assert.Equal(t, NoticePassThrough, built.Notices[0].Kind)
	assert.Contains(t, built.Notices[0].Message, "L/s to m³/h")
	assert.Equal(t, "pipe_diameter", built.Notices[1].Field)
}

func TestBuild_StrictUnitsRejectsPassThrough(t *testing.T) {
	doc := Document{Values: map[string]Quantity{"head": {Value: 98, Unit: "ft"}}}

	_, err := newTestBuilder(WithStrictUnits(true)).Build(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, units.ErrUnknownPair))
	assert.Contains(t, err.Error(), "head")

	// Convertible pairs are still fine in strict mode.
	doc = Document{Values: map[string]Quantity{"power_rating": {Value: 100, Unit: "hp"}}}
	built, err := newTestBuilder(WithStrictUnits(true)).Build(doc)
	require.NoError(t, err)
	assert.InDelta(t, 74.57, built.Params.PowerRating, 1e-9)
}

func TestBuild_ConversionHookSeesEveryLookup(t *testing.T) {
	var seen []units.Result
	b := newTestBuilder(WithConversionHook(func(res units.Result) {
		seen = append(seen, res)
	}))

	_, err := b.Build(Document{Values: map[string]Quantity{
		"power_rating": {Value: 100, Unit: "hp"},
		"flow_rate":    {Value: 20, Unit: "L/s"},
		"head":         {Value: 30, Unit: "m"},
	}})
	require.NoError(t, err)

	// Canonical units skip the table entirely.
	require.Len(t, seen, 2)
	statuses := map[units.Status]int{}
	for _, res := range seen {
		statuses[res.Status]++
	}
	assert.Equal(t, 1, statuses[units.StatusConverted])
	assert.Equal(t, 1, statuses[units.StatusPassThrough])
}

func TestBuild_InjectedTableConverts(t *testing.T) {
	table, err := units.LoadTable("../../examples/imperial-units.yaml")
	require.NoError(t, err)

	b := NewBuilder(units.NewConverter(table, zerolog.Nop()), zerolog.Nop(), WithStrictUnits(true))
	built, err := b.Build(Document{Values: map[string]Quantity{
		"flow_rate":     {Value: 20, Unit: "L/s"},
		"pipe_diameter": {Value: 300, Unit: "mm"},
	}})
	require.NoError(t, err)
	assert.InDelta(t, 72.0, built.Params.FlowRate, 1e-9)
	assert.InDelta(t, 0.3, built.Params.PipeDiameter, 1e-12)
}

func TestBuild_Clamping(t *testing.T) {
	doc := Document{
		Values: map[string]Quantity{
			"operating_hours": {Value: 30},
			"efficiency":      {Value: -5},
			"pipeline_age":    {Value: 12.6},
		},
	}

	built, err := newTestBuilder().Build(doc)
	require.NoError(t, err)

	assert.Equal(t, 24.0, built.Params.OperatingHours)
	assert.Equal(t, 0.0, built.Params.Efficiency)
	assert.Equal(t, 13.0, built.Params.PipelineAge, "integer fields are rounded")

	require.Len(t, built.Notices, 2)
	for _, n := range built.Notices {
		assert.Equal(t, NoticeClamped, n.Kind)
	}
}

func TestBuild_PsiBoostPassesThroughThenClamps(t *testing.T) {
	doc := Document{
		Pump:   "booster",
		Values: map[string]Quantity{"pressure_boost": {Value: 29, Unit: "psi"}},
	}

	built, err := newTestBuilder().Build(doc)
	require.NoError(t, err)

	assert.Equal(t, 10.0, built.Params.PressureBoost)
	require.Len(t, built.Notices, 2)
	assert.Equal(t, NoticePassThrough, built.Notices[0].Kind)
	assert.Equal(t, NoticeClamped, built.Notices[1].Kind)
}

func TestBuild_Fahrenheit(t *testing.T) {
	doc := Document{Values: map[string]Quantity{"fluid_temperature": {Value: 68, Unit: "Fahrenheit"}}}

	built, err := newTestBuilder(WithStrictUnits(true)).Build(doc)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, built.FluidTemperature, 1e-12)
}

func TestBuild_EmissionFactorPrecedence(t *testing.T) {
	doc := Document{
		EmissionGrid: "sweden",
		Values:       map[string]Quantity{"emission_factor": {Value: 0.0005}},
	}
	built, err := newTestBuilder().Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 0.0005, built.Params.EmissionFactor)

	built, err = newTestBuilder().Build(Document{EmissionGrid: "atlantis"})
	require.NoError(t, err)
	assert.Equal(t, carbon.DefaultEmissionFactor, built.Params.EmissionFactor)
	require.Len(t, built.Notices, 1)
	assert.Equal(t, NoticeUnknownGrid, built.Notices[0].Kind)
}

func TestBuild_DistributionDetails(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    Details
		notices int
	}{
		{
			name: "vertical turbine rounds stages",
			doc: Document{
				Distribution: "Vertical Turbine Pump",
				Details: map[string]Quantity{
					"shaft_length":    {Value: 40},
					"impeller_stages": {Value: 4.4},
				},
			},
			want: VerticalTurbineDetails{ShaftLength: 40, ImpellerStages: 4},
		},
		{
			name: "horizontal split case converts hp",
			doc: Document{
				Distribution: "horizontal-split-case",
				Details:      map[string]Quantity{"power_rating": {Value: 100, Unit: "hp"}},
			},
			want: HorizontalSplitCaseDetails{NPSH: 3, PowerRating: 74.57},
		},
		{
			name: "multistage defaults",
			doc:  Document{Distribution: "multistage"},
			want: MultistageDetails{StagePressure: 2, Stages: 4},
		},
		{
			name: "inline clamps motor efficiency",
			doc: Document{
				Distribution: "inline",
				Details:      map[string]Quantity{"motor_efficiency": {Value: 30}},
			},
			want:    InlineDetails{MotorEfficiency: 50},
			notices: 1,
		},
		{
			name: "end suction psi passes through",
			doc: Document{
				Distribution: "end-suction",
				Details:      map[string]Quantity{"discharge_pressure": {Value: 5, Unit: "psi"}},
			},
			want:    EndSuctionDetails{SuctionLift: 10, DischargePressure: 5},
			notices: 1,
		},
		{
			name: "submersible defaults",
			doc:  Document{Distribution: "submersible"},
			want: SubmersibleDetails{SubmersionDepth: 100, DischargeHead: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := newTestBuilder().Build(tt.doc)
			require.NoError(t, err)
			require.NotNil(t, built.Details)
			assert.Equal(t, tt.want.Distribution(), built.Distribution)

			if hsc, ok := tt.want.(HorizontalSplitCaseDetails); ok {
				got := built.Details.(HorizontalSplitCaseDetails)
				assert.Equal(t, hsc.NPSH, got.NPSH)
				assert.InDelta(t, hsc.PowerRating, got.PowerRating, 1e-9)
			} else {
				assert.Equal(t, tt.want, built.Details)
			}
			assert.Len(t, built.Notices, tt.notices)
			if tt.notices > 0 {
				assert.Contains(t, built.Notices[0].Field, "details.")
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown variant",
			doc:     Document{Pump: "jet"},
			wantErr: ErrUnknownVariant,
		},
		{
			name:    "unknown distribution",
			doc:     Document{Distribution: "diaphragm"},
			wantErr: ErrUnknownDistribution,
		},
		{
			name:    "boost on a normal pump",
			doc:     Document{Pump: "normal", Values: map[string]Quantity{"pressure_boost": {Value: 2}}},
			wantErr: ErrUnknownField,
			wantMsg: "pressure_boost",
		},
		{
			name:    "misspelled field",
			doc:     Document{Values: map[string]Quantity{"pipe_lenght": {Value: 2}}},
			wantErr: ErrUnknownField,
			wantMsg: "pipe_lenght",
		},
		{
			name:    "detail of another distribution",
			doc:     Document{Distribution: "inline", Details: map[string]Quantity{"npsh": {Value: 2}}},
			wantErr: ErrUnknownField,
			wantMsg: "details.npsh",
		},
		{
			name:    "details on a booster",
			doc:     Document{Pump: "booster", Distribution: "inline"},
			wantErr: ErrUnknownField,
		},
		{
			name:    "unit not offered",
			doc:     Document{Values: map[string]Quantity{"pipe_length": {Value: 2, Unit: "feet"}}},
			wantErr: ErrUnsupportedUnit,
			wantMsg: "pipe_length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestBuilder().Build(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestBuild_RejectsNonFinite(t *testing.T) {
	doc := Document{Values: map[string]Quantity{"head": {Value: math.Inf(1)}}}
	_, err := newTestBuilder().Build(doc)
	assert.ErrorContains(t, err, "finite")
}
