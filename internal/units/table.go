// Package units rescales numeric values between named units using a fixed
// table of directional multiplicative factors.
package units

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// keySeparator joins the source and target unit names in a table key.
const keySeparator = " to "

// Table maps "<from> to <to>" keys to positive multiplicative factors.
// A Table is immutable once built and safe for concurrent readers.
// The zero Table is empty: every lookup on it misses.
type Table struct {
	factors map[string]float64
}

// Pair is a single directional table entry.
type Pair struct {
	From   string  `json:"from" yaml:"from" msgpack:"from"`
	To     string  `json:"to" yaml:"to" msgpack:"to"`
	Factor float64 `json:"factor" yaml:"factor" msgpack:"factor"`
}

// Key builds the composite lookup key for a unit pair.
func Key(from, to string) string {
	return from + keySeparator + to
}

// SplitKey splits a composite key back into its unit names.
// Returns false if the key does not contain the " to " separator with
// non-empty unit names on both sides.
func SplitKey(key string) (from, to string, ok bool) {
	idx := strings.Index(key, keySeparator)
	if idx <= 0 || idx+len(keySeparator) >= len(key) {
		return "", "", false
	}
	return key[:idx], key[idx+len(keySeparator):], true
}

// NewTable copies factors into an immutable Table.
// Every key must have the form "<from> to <to>" and every factor must be
// finite and strictly positive.
func NewTable(factors map[string]float64) (Table, error) {
	copied := make(map[string]float64, len(factors))
	for key, factor := range factors {
		if _, _, ok := SplitKey(key); !ok {
			return Table{}, fmt.Errorf("conversion key %q: expected \"<from> to <to>\"", key)
		}
		if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
			return Table{}, fmt.Errorf("conversion %q: factor must be a positive finite number, got %v", key, factor)
		}
		copied[key] = factor
	}
	return Table{factors: copied}, nil
}

// DefaultTable returns the built-in conversion table.
//
// The table is deliberately directional: "m to feet" exists alongside
// "feet to m", but most pairs have no reverse entry, and several unit
// spellings offered by input forms ("L/s", "mm", "ft", "psi to bar") have
// no entry at all and therefore pass through unchanged.
func DefaultTable() Table {
	t, err := NewTable(map[string]float64{
		"m³/s to liters/s":     1000,
		"m³/s to ft³/s":        35.3147,
		"gallon/s to m³/s":     0.00378541,
		"liters to m³":         0.001,
		"m³ to liters":         1000,
		"m to feet":            3.28084,
		"feet to m":            0.3048,
		"bar to Pa":            100000,
		"bar to psi":           14.5038,
		"atm to Pa":            101325,
		"psi to kPa":           6.89476,
		"kWh to MJ":            3.6,
		"hp to kW":             0.7457,
		"kW to hp":             1.341,
		"metric ton to kg":     1000,
		"kg to metric ton":     0.001,
		"m/s to km/h":          3.6,
		"m/s to mph":           2.23694,
		"CO2 kg to metric ton": 0.001,
		"metric ton to lbs":    2204.62,
	})
	if err != nil {
		// The literal above is static; a failure here is a programming error.
		panic(err)
	}
	return t
}

// Factor returns the multiplicative factor for from→to.
// Returns (0, false) if the pair has no entry. No inverse lookup is attempted.
func (t Table) Factor(from, to string) (float64, bool) {
	factor, ok := t.factors[Key(from, to)]
	return factor, ok
}

// Len returns the number of directional entries.
func (t Table) Len() int {
	return len(t.factors)
}

// Pairs returns every entry sorted by key.
func (t Table) Pairs() []Pair {
	keys := make([]string, 0, len(t.factors))
	for key := range t.factors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, key := range keys {
		from, to, _ := SplitKey(key)
		pairs = append(pairs, Pair{From: from, To: to, Factor: t.factors[key]})
	}
	return pairs
}
