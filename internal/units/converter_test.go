package units

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	return NewConverter(DefaultTable(), zerolog.Nop())
}

func TestConvert_DefinedPairsApplyFactor(t *testing.T) {
	c := newTestConverter(t)

	for _, p := range DefaultTable().Pairs() {
		t.Run(Key(p.From, p.To), func(t *testing.T) {
			for _, v := range []float64{1, 2.5, -7, 1234.5678} {
				assert.Equal(t, v*p.Factor, c.Convert(v, p.From, p.To))
			}
		})
	}
}

func TestConvert_ZeroStaysZero(t *testing.T) {
	c := newTestConverter(t)

	for _, p := range DefaultTable().Pairs() {
		assert.Zero(t, c.Convert(0, p.From, p.To), Key(p.From, p.To))
	}
}

func TestConvert_UnknownPairPassesThrough(t *testing.T) {
	c := newTestConverter(t)

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"no entry for L/s", "L/s", "m³/h"},
		{"no entry for mm", "mm", "m"},
		{"ft is not feet", "ft", "m"},
		{"psi to bar missing", "psi", "bar"},
		{"no inverse lookup", "MJ", "kWh"},
		{"case sensitive", "HP", "kW"},
		{"identical units", "m", "m"},
		{"empty names", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 42.5, c.Convert(42.5, tt.from, tt.to))

			res := c.Resolve(42.5, tt.from, tt.to)
			assert.Equal(t, StatusPassThrough, res.Status)
			assert.False(t, res.Converted())
			assert.Equal(t, 1.0, res.Factor)
		})
	}
}

func TestResolve_TagsConversions(t *testing.T) {
	c := newTestConverter(t)

	res := c.Resolve(100, "hp", "kW")
	assert.True(t, res.Converted())
	assert.Equal(t, StatusConverted, res.Status)
	assert.InDelta(t, 74.57, res.Value, 1e-9)
	assert.Equal(t, 0.7457, res.Factor)
	assert.Equal(t, "hp", res.From)
	assert.Equal(t, "kW", res.To)
}

func TestConvertStrict(t *testing.T) {
	c := newTestConverter(t)

	v, err := c.ConvertStrict(2, "bar", "Pa")
	require.NoError(t, err)
	assert.Equal(t, 200000.0, v)

	_, err = c.ConvertStrict(2, "psi", "bar")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPair))
	assert.Contains(t, err.Error(), "psi to bar")
}

func TestConverter_InjectedTable(t *testing.T) {
	table, err := NewTable(map[string]float64{"furlong to m": 201.168})
	require.NoError(t, err)

	c := NewConverter(table, zerolog.Nop())
	assert.InDelta(t, 402.336, c.Convert(2, "furlong", "m"), 1e-9)
	// The default table is not consulted.
	assert.Equal(t, 1.0, c.Convert(1, "m", "feet"))
	assert.Equal(t, 1, c.Table().Len())
}

func TestZeroTablePassesEverythingThrough(t *testing.T) {
	c := NewConverter(Table{}, zerolog.Nop())
	assert.Equal(t, 3.0, c.Convert(3, "m", "feet"))
	assert.Empty(t, Table{}.Pairs())
}

func TestFahrenheitToCelsius(t *testing.T) {
	assert.InDelta(t, 0.0, FahrenheitToCelsius(32), 1e-12)
	assert.InDelta(t, 100.0, FahrenheitToCelsius(212), 1e-12)
	assert.InDelta(t, -40.0, FahrenheitToCelsius(-40), 1e-12)
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		factors map[string]float64
		wantErr string
	}{
		{"missing separator", map[string]float64{"meters": 1}, "expected"},
		{"empty source", map[string]float64{" to m": 1}, "expected"},
		{"empty target", map[string]float64{"m to ": 1}, "expected"},
		{"zero factor", map[string]float64{"m to feet": 0}, "positive"},
		{"negative factor", map[string]float64{"m to feet": -3}, "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.factors)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTable_CopiesInput(t *testing.T) {
	src := map[string]float64{"m to feet": 3.28084}
	table, err := NewTable(src)
	require.NoError(t, err)

	src["m to feet"] = 99
	src["feet to m"] = 0.3048

	f, ok := table.Factor("m", "feet")
	require.True(t, ok)
	assert.Equal(t, 3.28084, f)
	assert.Equal(t, 1, table.Len())
}

func TestDefaultTable_Contents(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, 20, table.Len())

	pairs := table.Pairs()
	for i := 1; i < len(pairs); i++ {
		assert.Less(t, Key(pairs[i-1].From, pairs[i-1].To), Key(pairs[i].From, pairs[i].To))
	}

	f, ok := table.Factor("CO2 kg", "metric ton")
	require.True(t, ok)
	assert.Equal(t, 0.001, f)

	_, ok = table.Factor("feet", "km/h")
	assert.False(t, ok)
}

func TestSplitKey(t *testing.T) {
	from, to, ok := SplitKey("metric ton to lbs")
	require.True(t, ok)
	assert.Equal(t, "metric ton", from)
	assert.Equal(t, "lbs", to)

	from, to, ok = SplitKey("CO2 kg to metric ton")
	require.True(t, ok)
	assert.Equal(t, "CO2 kg", from)
	assert.Equal(t, "metric ton", to)

	_, _, ok = SplitKey("to")
	assert.False(t, ok)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imperial.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`conversions:
  "m to feet": 3.28084
  "feet to m": 0.3048
  "gpm to m³/h": 0.227125
`), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	f, ok := table.Factor("gpm", "m³/h")
	require.True(t, ok)
	assert.Equal(t, 0.227125, f)
}

func TestParseTable_Errors(t *testing.T) {
	_, err := ParseTable([]byte("conversions: [1, 2"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("conversions: {}"))
	assert.ErrorContains(t, err, "no entries")

	_, err = ParseTable([]byte(`conversions: {"bogus": 2}`))
	assert.ErrorContains(t, err, "bogus")

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading conversion table")
}
