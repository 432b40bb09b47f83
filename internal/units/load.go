package units

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of an alternate conversion table:
//
//	conversions:
//	  "m to feet": 3.28084
//	  "feet to m": 0.3048
type tableFile struct {
	Conversions map[string]float64 `yaml:"conversions"`
}

// ParseTable decodes a YAML conversion table.
func ParseTable(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("parsing conversion table YAML: %w", err)
	}
	if len(f.Conversions) == 0 {
		return Table{}, fmt.Errorf("conversion table has no entries")
	}
	return NewTable(f.Conversions)
}

// LoadTable reads a YAML conversion table from path.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading conversion table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
