package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pumpcarbon/internal/carbon"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    carbon.Variant
		wantErr bool
	}{
		{"", carbon.VariantNormal, false},
		{"normal", carbon.VariantNormal, false},
		{"Normal Pump", carbon.VariantNormal, false},
		{"  Water Distribution Pumps ", carbon.VariantNormal, false},
		{"booster", carbon.VariantBooster, false},
		{"BOOSTER PUMP", carbon.VariantBooster, false},
		{"jet", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownVariant))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Normal Pump", DisplayName(carbon.VariantNormal))
	assert.Equal(t, "Booster Pump", DisplayName(carbon.VariantBooster))
}

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		in   string
		want Distribution
	}{
		{"", Centrifugal},
		{"centrifugal", Centrifugal},
		{"End-Suction Pump", EndSuction},
		{"horizontal split-case pump", HorizontalSplitCase},
		{"vertical-turbine", VerticalTurbine},
		{"Multistage Pump", Multistage},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDistribution(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDistribution("diaphragm")
	assert.True(t, errors.Is(err, ErrUnknownDistribution))
}

func TestDistributionsHaveDetailFields(t *testing.T) {
	for _, d := range Distributions {
		fields := DetailFields(d)
		assert.NotEmpty(t, fields, d.String())

		details := newDetails(d, map[string]float64{})
		assert.Equal(t, d, details.Distribution())
	}
}

func TestFields(t *testing.T) {
	normal := Fields(carbon.VariantNormal)
	booster := Fields(carbon.VariantBooster)

	assert.Len(t, booster, len(normal)+1)
	_, ok := findField(normal, "pressure_boost")
	assert.False(t, ok)
	_, ok = findField(booster, "pressure_boost")
	assert.True(t, ok)

	for _, f := range booster {
		require.NotEmpty(t, f.Units, f.Key)
		assert.Equal(t, f.Unit, f.Units[0], "%s: canonical unit comes first", f.Key)
		if f.Limits != nil {
			assert.LessOrEqual(t, f.Limits.Min, f.Default, f.Key)
			assert.GreaterOrEqual(t, f.Limits.Max, f.Default, f.Key)
		}
	}
}

func TestDetailFieldsIsACopy(t *testing.T) {
	fields := DetailFields(Inline)
	fields[0].Default = 1

	assert.Equal(t, 90.0, DetailFields(Inline)[0].Default)
}
