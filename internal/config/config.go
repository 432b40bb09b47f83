// Package config resolves runtime settings from defaults, an optional YAML
// file and PUMPCARBON_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/report"
	"github.com/rshade/pumpcarbon/internal/units"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PUMPCARBON_"

// EnvConfigPath names the config file when no --config flag is given.
const EnvConfigPath = EnvPrefix + "CONFIG"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds the resolved settings shared by the CLI and the HTTP server.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ListenAddr string `yaml:"listen_addr"`

	// ConversionTable is a YAML conversion table file. Empty uses the
	// built-in table.
	ConversionTable string `yaml:"conversion_table"`

	// StrictUnits turns unit pass-through into an error.
	StrictUnits bool `yaml:"strict_units"`

	// Output is the default report format for the CLI.
	Output string `yaml:"output"`

	Constants carbon.Constants `yaml:"constants"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  LogFormatConsole,
		ListenAddr: ":8080",
		Output:     string(report.FormatText),
		Constants:  carbon.DefaultConstants(),
	}
}

// Load returns the defaults overlaid with the YAML file at path. Keys the
// file omits keep their default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve builds the effective configuration. path may be empty, in which
// case PUMPCARBON_CONFIG is consulted; with neither, only defaults and
// environment overrides apply. The result is validated.
func Resolve(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LOG_LEVEL":        &c.LogLevel,
		"LOG_FORMAT":       &c.LogFormat,
		"LISTEN_ADDR":      &c.ListenAddr,
		"CONVERSION_TABLE": &c.ConversionTable,
		"OUTPUT":           &c.Output,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "STRICT_UNITS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sSTRICT_UNITS: %w", EnvPrefix, err)
		}
		c.StrictUnits = b
	}

	floats := map[string]*float64{
		"FRICTION_FACTOR": &c.Constants.FrictionFactor,
		"GRAVITY":         &c.Constants.Gravity,
		"BOOST_SCALE":     &c.Constants.BoostScale,
		"DAYS_PER_YEAR":   &c.Constants.DaysPerYear,
	}
	for name, dst := range floats {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
	}
	return nil
}

// Validate reports every invalid setting at once. The returned error
// matches ErrInvalidConfig.
func (c Config) Validate() error {
	var problems []string

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || c.LogLevel == "" {
		problems = append(problems, fmt.Sprintf("log_level %q is not a log level", c.LogLevel))
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		problems = append(problems, fmt.Sprintf("log_format %q must be %q or %q", c.LogFormat, LogFormatConsole, LogFormatJSON))
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		problems = append(problems, fmt.Sprintf("output: %v", err))
	}
	if c.ListenAddr == "" {
		problems = append(problems, "listen_addr must not be empty")
	}

	consts := []struct {
		name  string
		value float64
	}{
		{"friction_factor", c.Constants.FrictionFactor},
		{"gravity", c.Constants.Gravity},
		{"boost_scale", c.Constants.BoostScale},
		{"days_per_year", c.Constants.DaysPerYear},
	}
	for _, k := range consts {
		if !(k.value > 0) {
			problems = append(problems, fmt.Sprintf("constants.%s must be positive, got %v", k.name, k.value))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// Table loads the configured conversion table, or the built-in one.
func (c Config) Table() (units.Table, error) {
	if c.ConversionTable == "" {
		return units.DefaultTable(), nil
	}
	return units.LoadTable(c.ConversionTable)
}

// NewLogger builds the root logger for cfg writing to w. Console output is
// human readable; json emits one object per line.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.LogFormat != LogFormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
