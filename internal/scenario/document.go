package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Quantity is a value with the unit it was entered in. An empty Unit means
// the field's canonical unit.
//
// In YAML and JSON a bare number is accepted as shorthand for a Quantity in
// the canonical unit:
//
//	power_rating: 100
//	power_rating: {value: 134, unit: hp}
type Quantity struct {
	Value float64 `json:"value" yaml:"value" msgpack:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty" msgpack:"unit,omitempty"`
}

// quantityFields avoids recursing into the custom unmarshalers.
type quantityFields struct {
	Value *float64 `json:"value" yaml:"value"`
	Unit  string   `json:"unit" yaml:"unit"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: quantity must be a number: %w", node.Line, err)
		}
		*q = Quantity{Value: v}
		return nil
	}

	var f quantityFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	if f.Value == nil {
		return fmt.Errorf("line %d: quantity is missing \"value\"", node.Line)
	}
	*q = Quantity{Value: *f.Value, Unit: f.Unit}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}
		*q = Quantity{Value: v}
		return nil
	}

	var f quantityFields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}
	if f.Value == nil {
		return fmt.Errorf("quantity is missing \"value\"")
	}
	*q = Quantity{Value: *f.Value, Unit: f.Unit}
	return nil
}

// Document is an operator-entered scenario.
type Document struct {
	// Pump is the variant key or display name ("normal", "Booster Pump").
	Pump string `json:"pump" yaml:"pump" msgpack:"pump"`

	// Distribution selects the distribution pump type for normal pumps.
	Distribution string `json:"distribution,omitempty" yaml:"distribution,omitempty" msgpack:"distribution,omitempty"`

	// EmissionGrid names an emission factor preset. An explicit
	// emission_factor value takes precedence.
	EmissionGrid string `json:"emission_grid,omitempty" yaml:"emission_grid,omitempty" msgpack:"emission_grid,omitempty"`

	// Values holds pump-level inputs keyed by field key.
	Values map[string]Quantity `json:"values,omitempty" yaml:"values,omitempty" msgpack:"values,omitempty"`

	// Details holds distribution-specific inputs keyed by field key.
	Details map[string]Quantity `json:"details,omitempty" yaml:"details,omitempty" msgpack:"details,omitempty"`
}

// Parse decodes a YAML scenario document. Unknown top-level keys are rejected.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return doc, nil
}

// Load reads a YAML scenario document from path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// DecodeJSON decodes a JSON scenario document. Unknown keys are rejected.
func DecodeJSON(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parsing scenario JSON: %w", err)
	}
	return doc, nil
}
