package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rshade/pumpcarbon/internal/config"
	"github.com/rshade/pumpcarbon/internal/scenario"
	"github.com/rshade/pumpcarbon/internal/units"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalculate_Defaults(t *testing.T) {
	out, err := run(t, "calculate")
	require.NoError(t, err)

	assert.Contains(t, out, "Normal Pump / Centrifugal Pump")
	assert.Contains(t, out, "Baseline Energy Consumption (Normal Pump): 800.00 kWh/day")
	assert.Contains(t, out, "Baseline CO2 Emissions: 0.4474 metric tons/day")
	assert.Contains(t, out, "Total Annual Cost: 394200.00 currency units")
	assert.NotContains(t, out, "Impact of Leakage")
}

func TestCalculate_BoosterFlag(t *testing.T) {
	out, err := run(t, "calculate", "--pump", "booster")
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline Energy Consumption (with Pressure Boost): 960.00 kWh/day")
}

func TestCalculate_ScenarioFileJSON(t *testing.T) {
	out, err := run(t, "calculate", "../../internal/scenario/testdata/booster.yaml", "-o", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "booster", doc["variant"])
	params := doc["params"].(map[string]any)
	assert.Equal(t, 0.000322, params["emission_factor_t_per_kwh"])
}

func TestCalculate_Msgpack(t *testing.T) {
	out, err := run(t, "calculate", "../../examples/centrifugal.yaml", "--output", "msgpack")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, msgpack.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "centrifugal", doc["distribution"])
	assert.NotEmpty(t, doc["notices"], "ft to m has no entry in the built-in table")
}

func TestCalculate_StrictUnits(t *testing.T) {
	_, err := run(t, "calculate", "../../examples/centrifugal.yaml", "--strict-units")
	require.Error(t, err)
	assert.True(t, errors.Is(err, units.ErrUnknownPair))
}

func TestCalculate_ConfigTable(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pumpcarbon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"conversion_table: ../../examples/imperial-units.yaml\nstrict_units: true\noutput: json\n"), 0o600))

	out, err := run(t, "--config", cfgPath, "calculate", "../../examples/centrifugal.yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotContains(t, doc, "notices")
	params := doc["params"].(map[string]any)
	assert.InDelta(t, 98*0.3048, params["head_m"], 1e-9)
}

func TestCalculate_Errors(t *testing.T) {
	_, err := run(t, "calculate", "missing.yaml")
	assert.ErrorContains(t, err, "reading scenario file")

	_, err = run(t, "calculate", "--pump", "jet")
	assert.True(t, errors.Is(err, scenario.ErrUnknownVariant))

	_, err = run(t, "calculate", "-o", "xml")
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "calculate")
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestConvert(t *testing.T) {
	out, err := run(t, "convert", "100", "hp", "kW")
	require.NoError(t, err)
	assert.Equal(t, "100 hp = 74.57 kW (converted)\n", out)

	out, err = run(t, "convert", "20", "L/s", "m³/h")
	require.NoError(t, err)
	assert.Equal(t, "20 L/s = 20 m³/h (pass_through)\n", out)

	_, err = run(t, "convert", "20", "L/s", "m³/h", "--strict")
	assert.True(t, errors.Is(err, units.ErrUnknownPair))

	out, err = run(t, "convert", "3", "liters", "m³", "--round-trip")
	require.NoError(t, err)
	assert.Contains(t, out, "round trip: 3 liters -> 3 liters (exact)")

	out, err = run(t, "convert", "1", "hp", "kW", "--round-trip")
	require.NoError(t, err)
	assert.Contains(t, out, "(not reciprocal)")

	_, err = run(t, "convert", "ten", "hp", "kW")
	assert.ErrorContains(t, err, "invalid value")

	out, err = run(t, "convert", "1", "bar", "psi", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":14.5038,"from":"bar","to":"psi","factor":14.5038,"status":"converted"}`, out)
}

func TestUnits(t *testing.T) {
	out, err := run(t, "units")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM")
	assert.Contains(t, out, "hp")
	assert.Contains(t, out, "ASYMMETRIC PAIR")
	assert.Contains(t, out, "feet to m")
	assert.Contains(t, out, "hp to kW")
}

func TestReference(t *testing.T) {
	out, err := run(t, "reference", "--pump", "Booster Pump")
	require.NoError(t, err)
	assert.Contains(t, out, "Booster Pump Input Data")
	assert.Contains(t, out, "1. Power Rating (kW)\n   Range: 1.0 to 500.0 kW\n")
	assert.Contains(t, out, "Pressure Boost (bar)")
	assert.Contains(t, out, "Emission grids: australia, brazil, canada, default,")
	assert.Contains(t, out, "Share: ?pump=Booster+Pump")

	out, err = run(t, "reference", "-o", "json")
	require.NoError(t, err)
	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, "Normal Pump Input Data", page["title"])
}
