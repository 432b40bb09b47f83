// Package scenario turns operator-entered pump scenarios into calculator
// inputs. It owns the catalog of recognised fields per pump variant, their
// units, ranges and documentation.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/pumpcarbon/internal/carbon"
)

// ErrUnknownVariant is returned when a pump variant name is not recognised.
var ErrUnknownVariant = errors.New("unknown pump variant")

// ErrUnknownDistribution is returned when a distribution pump type is not recognised.
var ErrUnknownDistribution = errors.New("unknown distribution pump type")

// Variants lists the supported pump variants in display order.
var Variants = []carbon.Variant{carbon.VariantNormal, carbon.VariantBooster}

// DisplayName returns the human-facing name of a variant.
func DisplayName(v carbon.Variant) string {
	switch v {
	case carbon.VariantBooster:
		return "Booster Pump"
	default:
		return "Normal Pump"
	}
}

// ParseVariant accepts a variant key ("normal", "booster") or one of its
// display names, case-insensitively. An empty name selects the normal pump.
func ParseVariant(name string) (carbon.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal", "normal pump", "water distribution pumps", "water distribution pump":
		return carbon.VariantNormal, nil
	case "booster", "booster pump":
		return carbon.VariantBooster, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownVariant, name)
}

// Distribution is the specific kind of water distribution pump.
type Distribution string

const (
	Centrifugal         Distribution = "centrifugal"
	Submersible         Distribution = "submersible"
	EndSuction          Distribution = "end-suction"
	HorizontalSplitCase Distribution = "horizontal-split-case"
	VerticalTurbine     Distribution = "vertical-turbine"
	Inline              Distribution = "inline"
	Multistage          Distribution = "multistage"
)

// Distributions lists the distribution pump types in display order.
var Distributions = []Distribution{
	Centrifugal,
	Submersible,
	EndSuction,
	HorizontalSplitCase,
	VerticalTurbine,
	Inline,
	Multistage,
}

var distributionNames = map[Distribution]string{
	Centrifugal:         "Centrifugal Pump",
	Submersible:         "Submersible Pump",
	EndSuction:          "End-Suction Pump",
	HorizontalSplitCase: "Horizontal Split-Case Pump",
	VerticalTurbine:     "Vertical Turbine Pump",
	Inline:              "Inline Pump",
	Multistage:          "Multistage Pump",
}

// String returns the display name, e.g. "End-Suction Pump".
func (d Distribution) String() string {
	if name, ok := distributionNames[d]; ok {
		return name
	}
	return string(d)
}

// ParseDistribution accepts a key or display name. Empty selects Centrifugal.
func ParseDistribution(name string) (Distribution, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Centrifugal, nil
	}
	for _, d := range Distributions {
		if n == string(d) || n == strings.ToLower(d.String()) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownDistribution, name)
}

// Details carries the subtype-specific inputs of a distribution pump.
// Exactly one concrete type exists per Distribution.
type Details interface {
	Distribution() Distribution
	isDetails()
}

// CentrifugalDetails describes a centrifugal pump.
type CentrifugalDetails struct {
	FlowRate         float64 `json:"flow_rate_m3h" msgpack:"flow_rate_m3h"`
	Head             float64 `json:"head_m" msgpack:"head_m"`
	ImpellerDiameter float64 `json:"impeller_diameter_mm" msgpack:"impeller_diameter_mm"`
}

// SubmersibleDetails describes a submersible pump.
type SubmersibleDetails struct {
	SubmersionDepth float64 `json:"submersion_depth_m" msgpack:"submersion_depth_m"`
	DischargeHead   float64 `json:"discharge_head_m" msgpack:"discharge_head_m"`
}

// EndSuctionDetails describes an end-suction pump.
type EndSuctionDetails struct {
	SuctionLift       float64 `json:"suction_lift_m" msgpack:"suction_lift_m"`
	DischargePressure float64 `json:"discharge_pressure_bar" msgpack:"discharge_pressure_bar"`
}

// HorizontalSplitCaseDetails describes a horizontal split-case pump.
type HorizontalSplitCaseDetails struct {
	NPSH        float64 `json:"npsh_m" msgpack:"npsh_m"`
	PowerRating float64 `json:"power_rating_kw" msgpack:"power_rating_kw"`
}

// VerticalTurbineDetails describes a vertical turbine pump.
type VerticalTurbineDetails struct {
	ShaftLength    float64 `json:"shaft_length_m" msgpack:"shaft_length_m"`
	ImpellerStages int     `json:"impeller_stages" msgpack:"impeller_stages"`
}

// InlineDetails describes an inline pump.
type InlineDetails struct {
	MotorEfficiency float64 `json:"motor_efficiency_pct" msgpack:"motor_efficiency_pct"`
}

// MultistageDetails describes a multistage pump.
type MultistageDetails struct {
	StagePressure float64 `json:"stage_pressure_bar" msgpack:"stage_pressure_bar"`
	Stages        int     `json:"number_of_stages" msgpack:"number_of_stages"`
}

func (CentrifugalDetails) Distribution() Distribution         { return Centrifugal }
func (SubmersibleDetails) Distribution() Distribution         { return Submersible }
func (EndSuctionDetails) Distribution() Distribution          { return EndSuction }
func (HorizontalSplitCaseDetails) Distribution() Distribution { return HorizontalSplitCase }
func (VerticalTurbineDetails) Distribution() Distribution     { return VerticalTurbine }
func (InlineDetails) Distribution() Distribution              { return Inline }
func (MultistageDetails) Distribution() Distribution          { return Multistage }

func (CentrifugalDetails) isDetails()         {}
func (SubmersibleDetails) isDetails()         {}
func (EndSuctionDetails) isDetails()          {}
func (HorizontalSplitCaseDetails) isDetails() {}
func (VerticalTurbineDetails) isDetails()     {}
func (InlineDetails) isDetails()              {}
func (MultistageDetails) isDetails()          {}

// newDetails assembles the typed details from normalised values keyed by
// catalog field key.
func newDetails(d Distribution, v map[string]float64) Details {
	switch d {
	case Submersible:
		return SubmersibleDetails{SubmersionDepth: v["submersion_depth"], DischargeHead: v["discharge_head"]}
	case EndSuction:
		return EndSuctionDetails{SuctionLift: v["suction_lift"], DischargePressure: v["discharge_pressure"]}
	case HorizontalSplitCase:
		return HorizontalSplitCaseDetails{NPSH: v["npsh"], PowerRating: v["power_rating"]}
	case VerticalTurbine:
		return VerticalTurbineDetails{ShaftLength: v["shaft_length"], ImpellerStages: int(v["impeller_stages"])}
	case Inline:
		return InlineDetails{MotorEfficiency: v["motor_efficiency"]}
	case Multistage:
		return MultistageDetails{StagePressure: v["stage_pressure"], Stages: int(v["number_of_stages"])}
	default:
		return CentrifugalDetails{FlowRate: v["flow_rate"], Head: v["head"], ImpellerDiameter: v["impeller_diameter"]}
	}
}
