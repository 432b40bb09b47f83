package scenario

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/units"
)

var (
	// ErrUnknownField is returned for a value key the catalog does not
	// recognise for the selected variant or distribution.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnsupportedUnit is returned when a value is entered in a unit the
	// field does not offer.
	ErrUnsupportedUnit = errors.New("unsupported unit")
)

// NoticeKind classifies a Notice.
type NoticeKind string

const (
	// NoticePassThrough means the unit pair had no conversion factor and the
	// value was used as entered.
	NoticePassThrough NoticeKind = "pass_through"

	// NoticeClamped means the value was moved into the field's range.
	NoticeClamped NoticeKind = "clamped"

	// NoticeUnknownGrid means the emission grid preset was not found and the
	// default factor was used.
	NoticeUnknownGrid NoticeKind = "unknown_grid"
)

// Notice records an adjustment made while building calculator inputs.
type Notice struct {
	Field   string     `json:"field" msgpack:"field"`
	Kind    NoticeKind `json:"kind" msgpack:"kind"`
	Message string     `json:"message" msgpack:"message"`
}

// Built is a scenario ready for the calculator.
type Built struct {
	Variant carbon.Variant `json:"variant" msgpack:"variant"`

	// Distribution is empty for booster pumps.
	Distribution Distribution `json:"distribution,omitempty" msgpack:"distribution,omitempty"`

	// Params are the normalised calculator inputs.
	Params carbon.PumpParameters `json:"params" msgpack:"params"`

	// Details is nil for booster pumps.
	Details Details `json:"details,omitempty" msgpack:"details,omitempty"`

	// FluidTemperature in °C. Informational; no formula consumes it.
	FluidTemperature float64 `json:"fluid_temperature_c" msgpack:"fluid_temperature_c"`

	Notices []Notice `json:"notices,omitempty" msgpack:"notices,omitempty"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrictUnits makes unit pairs without a conversion factor an error
// instead of a pass-through notice.
func WithStrictUnits(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithConversionHook registers fn to observe every table lookup made while
// normalising units, including pass-throughs.
func WithConversionHook(fn func(units.Result)) Option {
	return func(b *Builder) {
		b.onConvert = fn
	}
}

// Builder converts Documents into calculator inputs.
type Builder struct {
	converter *units.Converter
	strict    bool
	logger    zerolog.Logger
	onConvert func(units.Result)
}

// NewBuilder creates a Builder that normalises units with converter.
func NewBuilder(converter *units.Converter, logger zerolog.Logger, opts ...Option) *Builder {
	b := &Builder{
		converter: converter,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the document against the field catalog and normalises
// every value to its canonical unit. Missing fields take catalog defaults.
// Values outside a field's range are clamped and reported as notices.
func (b *Builder) Build(doc Document) (Built, error) {
	variant, err := ParseVariant(doc.Pump)
	if err != nil {
		return Built{}, err
	}

	built := Built{Variant: variant}

	values, notices, err := b.normalise(Fields(variant), doc.Values, "")
	if err != nil {
		return Built{}, err
	}
	built.Notices = append(built.Notices, notices...)

	if variant == carbon.VariantNormal {
		dist, err := ParseDistribution(doc.Distribution)
		if err != nil {
			return Built{}, err
		}
		detailValues, notices, err := b.normalise(DetailFields(dist), doc.Details, "details.")
		if err != nil {
			return Built{}, err
		}
		built.Notices = append(built.Notices, notices...)
		built.Distribution = dist
		built.Details = newDetails(dist, detailValues)
	} else if doc.Distribution != "" || len(doc.Details) > 0 {
		return Built{}, fmt.Errorf("%w: distribution details apply only to normal pumps", ErrUnknownField)
	}

	if _, explicit := doc.Values["emission_factor"]; !explicit && doc.EmissionGrid != "" {
		factor, ok := carbon.EmissionFactor(doc.EmissionGrid)
		if !ok {
			built.Notices = append(built.Notices, Notice{
				Field:   "emission_grid",
				Kind:    NoticeUnknownGrid,
				Message: fmt.Sprintf("unknown emission grid %q, using default factor %v", doc.EmissionGrid, factor),
			})
		}
		values["emission_factor"] = factor
	}

	built.Params = carbon.PumpParameters{
		Variant:               variant,
		PowerRating:           values["power_rating"],
		OperatingHours:        values["operating_hours"],
		FlowRate:              values["flow_rate"],
		Head:                  values["head"],
		PipeLength:            values["pipe_length"],
		PipeDiameter:          values["pipe_diameter"],
		FlowVelocity:          values["flow_velocity"],
		Efficiency:            values["efficiency"],
		LeakageRate:           values["leakage_rate"],
		PressureBoost:         values["pressure_boost"],
		StaticHead:            values["static_head"],
		DynamicHead:           values["dynamic_head"],
		MechanicalEfficiency:  values["mechanical_efficiency"],
		EmissionFactor:        values["emission_factor"],
		ConstructionEmissions: values["construction_emissions"],
		MaintenanceEmissions:  values["maintenance_emissions"],
		PipelineAge:           values["pipeline_age"],
		EnergyCost:            values["energy_cost"],
		MaintenanceCost:       values["maintenance_cost"],
	}
	built.FluidTemperature = values["fluid_temperature"]

	for _, n := range built.Notices {
		b.logger.Debug().
			Str("field", n.Field).
			Str("kind", string(n.Kind)).
			Msg(n.Message)
	}

	return built, nil
}

// normalise resolves every field of the catalog from the supplied values,
// falling back to defaults. prefix qualifies field names in errors and notices.
func (b *Builder) normalise(fields []Field, supplied map[string]Quantity, prefix string) (map[string]float64, []Notice, error) {
	// Reject unrecognised keys first, in a stable order.
	keys := make([]string, 0, len(supplied))
	for key := range supplied {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := findField(fields, key); !ok {
			return nil, nil, fmt.Errorf("%w %q", ErrUnknownField, prefix+key)
		}
	}

	out := make(map[string]float64, len(fields))
	var notices []Notice

	for _, f := range fields {
		q, ok := supplied[f.Key]
		if !ok {
			out[f.Key] = f.Default
			continue
		}

		name := prefix + f.Key
		if math.IsNaN(q.Value) || math.IsInf(q.Value, 0) {
			return nil, nil, fmt.Errorf("%s: value must be a finite number", name)
		}
		if !f.AcceptsUnit(q.Unit) {
			return nil, nil, fmt.Errorf("%w %q for %s (accepted: %v)", ErrUnsupportedUnit, q.Unit, name, f.Units)
		}

		v, notice, err := b.toCanonical(name, f, q)
		if err != nil {
			return nil, nil, err
		}
		if notice != nil {
			notices = append(notices, *notice)
		}

		if f.Integer {
			v = math.Round(v)
		}
		if f.Limits != nil {
			clamped := carbon.Clamp(v, f.Limits.Min, f.Limits.Max)
			if clamped != v {
				notices = append(notices, Notice{
					Field:   name,
					Kind:    NoticeClamped,
					Message: fmt.Sprintf("%v %s is outside [%v, %v], clamped to %v", v, f.Unit, f.Limits.Min, f.Limits.Max, clamped),
				})
				v = clamped
			}
		}
		out[f.Key] = v
	}

	return out, notices, nil
}

// toCanonical converts q into the field's canonical unit.
func (b *Builder) toCanonical(name string, f Field, q Quantity) (float64, *Notice, error) {
	if q.Unit == "" || q.Unit == f.Unit {
		return q.Value, nil, nil
	}
	if q.Unit == unitFahrenheit && f.Unit == unitCelsius {
		return units.FahrenheitToCelsius(q.Value), nil, nil
	}

	res := b.converter.Resolve(q.Value, q.Unit, f.Unit)
	if b.onConvert != nil {
		b.onConvert(res)
	}
	if res.Converted() {
		return res.Value, nil, nil
	}
	if b.strict {
		_, err := b.converter.ConvertStrict(q.Value, q.Unit, f.Unit)
		return 0, nil, fmt.Errorf("%s: %w", name, err)
	}
	return res.Value, &Notice{
		Field:   name,
		Kind:    NoticePassThrough,
		Message: fmt.Sprintf("no conversion from %s to %s, using %v as entered", q.Unit, f.Unit, q.Value),
	}, nil
}
