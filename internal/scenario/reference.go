package scenario

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/rshade/pumpcarbon/internal/carbon"
)

// FieldDoc is one entry of the input reference page.
type FieldDoc struct {
	Index       int    `json:"index" msgpack:"index"`
	Key         string `json:"key" msgpack:"key"`
	Title       string `json:"title" msgpack:"title"`
	Range       string `json:"range" msgpack:"range"`
	Description string `json:"description" msgpack:"description"`
}

// ReferencePage documents the inputs of one variant.
type ReferencePage struct {
	Variant carbon.Variant `json:"variant" msgpack:"variant"`
	Title   string         `json:"title" msgpack:"title"`
	Fields  []FieldDoc     `json:"fields" msgpack:"fields"`

	// EmissionGrids names the emission factor presets a scenario may select.
	EmissionGrids []string `json:"emission_grids" msgpack:"emission_grids"`

	// Query is the sharable query string selecting this variant, e.g.
	// "pump=Booster+Pump".
	Query string `json:"query" msgpack:"query"`
}

// Reference builds the reference page for variant v from the field catalog,
// so documented ranges always match the ranges inputs are clamped to.
func Reference(v carbon.Variant) ReferencePage {
	fields := Fields(v)
	docs := make([]FieldDoc, 0, len(fields))
	for i, f := range fields {
		docs = append(docs, FieldDoc{
			Index:       i + 1,
			Key:         f.Key,
			Title:       fieldTitle(f),
			Range:       rangeText(f),
			Description: f.Description,
		})
	}
	return ReferencePage{
		Variant:       v,
		Title:         DisplayName(v) + " Input Data",
		Fields:        docs,
		EmissionGrids: carbon.EmissionGrids(),
		Query:         ShareQuery(v),
	}
}

// ShareQuery returns the query string that selects variant v.
func ShareQuery(v carbon.Variant) string {
	return url.Values{"pump": []string{DisplayName(v)}}.Encode()
}

func fieldTitle(f Field) string {
	switch f.Unit {
	case unitHours, unitCount, "":
		return f.Label
	}
	return fmt.Sprintf("%s (%s)", f.Label, f.Unit)
}

func rangeText(f Field) string {
	if f.Limits == nil {
		return "any non-negative value"
	}
	text := formatBound(f.Limits.Min) + " to " + formatBound(f.Limits.Max)
	switch f.Unit {
	case unitPercent:
		return text + "%"
	case unitHours:
		return text + " hours"
	case unitCount:
		return text
	}
	return text + " " + f.Unit
}

// formatBound prints bounds with at least one decimal, e.g. "1.0", "0.1", "500.0".
func formatBound(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == float64(int64(v)) {
		s += ".0"
	}
	return s
}
