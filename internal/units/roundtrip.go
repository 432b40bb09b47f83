package units

import "math"

// reciprocalTolerance is the relative error allowed when deciding whether two
// directional factors undo each other.
const reciprocalTolerance = 1e-9

// Asymmetry describes a pair whose reverse entry exists but is not the exact
// reciprocal of the forward factor.
type Asymmetry struct {
	Forward Pair    `json:"forward" msgpack:"forward"`
	Reverse Pair    `json:"reverse" msgpack:"reverse"`
	Product float64 `json:"product" msgpack:"product"` // Forward.Factor × Reverse.Factor; 1 when exact
}

// RoundTrip converts value from a to b and back again.
//
// The returned bool is true only when both directions are in the table and
// their factors are reciprocal within a 1e-9 relative tolerance. When either
// direction is missing the missing leg passes through, so the returned value
// may differ from value without any error being reported.
func (t Table) RoundTrip(value float64, a, b string) (float64, bool) {
	forward, okF := t.Factor(a, b)
	reverse, okR := t.Factor(b, a)

	out := value
	if okF {
		out *= forward
	}
	if okR {
		out *= reverse
	}

	if !okF || !okR {
		return out, false
	}
	return out, math.Abs(forward*reverse-1) <= reciprocalTolerance
}

// Asymmetries lists every pair whose reverse exists but whose factors
// multiply to something further than tol from 1. Each pair is reported once,
// with the lexically smaller key as Forward.
func (t Table) Asymmetries(tol float64) []Asymmetry {
	var out []Asymmetry
	for _, p := range t.Pairs() {
		reverse, ok := t.Factor(p.To, p.From)
		if !ok {
			continue
		}
		if Key(p.From, p.To) > Key(p.To, p.From) {
			continue
		}
		product := p.Factor * reverse
		if math.Abs(product-1) <= tol {
			continue
		}
		out = append(out, Asymmetry{
			Forward: p,
			Reverse: Pair{From: p.To, To: p.From, Factor: reverse},
			Product: product,
		})
	}
	return out
}
