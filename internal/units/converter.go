package units

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrUnknownPair is returned by strict conversions when the table has no
// entry for the requested unit pair.
var ErrUnknownPair = errors.New("unknown unit pair")

// Status tells whether a lookup applied a factor or returned the input unchanged.
type Status string

const (
	// StatusConverted means the pair was found and the factor applied.
	StatusConverted Status = "converted"

	// StatusPassThrough means the pair was not in the table and the value
	// was returned unchanged.
	StatusPassThrough Status = "pass_through"
)

// Result is the tagged outcome of a single conversion.
type Result struct {
	Value  float64 `json:"value" msgpack:"value"`
	From   string  `json:"from" msgpack:"from"`
	To     string  `json:"to" msgpack:"to"`
	Factor float64 `json:"factor" msgpack:"factor"` // 1 on pass-through
	Status Status  `json:"status" msgpack:"status"`
}

// Converted reports whether a table factor was applied.
func (r Result) Converted() bool {
	return r.Status == StatusConverted
}

// Converter rescales values using an injected Table.
type Converter struct {
	table  Table
	logger zerolog.Logger
}

// NewConverter creates a Converter over table.
// The logger receives a debug event for every pass-through lookup.
func NewConverter(table Table, logger zerolog.Logger) *Converter {
	return &Converter{
		table:  table,
		logger: logger,
	}
}

// Table returns the table the converter was built with.
func (c *Converter) Table() Table {
	return c.table
}

// Convert returns value × factor when "<from> to <to>" is in the table,
// otherwise value unchanged. A misspelled unit name is not an error.
func (c *Converter) Convert(value float64, from, to string) float64 {
	return c.Resolve(value, from, to).Value
}

// Resolve performs the same lookup as Convert but reports whether the value
// was converted or passed through, so callers can decide if a pass-through
// is acceptable.
func (c *Converter) Resolve(value float64, from, to string) Result {
	factor, ok := c.table.Factor(from, to)
	if !ok {
		c.logger.Debug().
			Str("from", from).
			Str("to", to).
			Float64("value", value).
			Msg("no conversion factor, passing value through")
		return Result{Value: value, From: from, To: to, Factor: 1, Status: StatusPassThrough}
	}
	return Result{Value: value * factor, From: from, To: to, Factor: factor, Status: StatusConverted}
}

// ConvertStrict is Convert without the silent fallback.
func (c *Converter) ConvertStrict(value float64, from, to string) (float64, error) {
	res := c.Resolve(value, from, to)
	if !res.Converted() {
		return 0, fmt.Errorf("convert %q: %w", Key(from, to), ErrUnknownPair)
	}
	return res.Value, nil
}

// FahrenheitToCelsius converts a temperature reading. It lives outside the
// table because the conversion is affine, not multiplicative.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}
