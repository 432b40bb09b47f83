package carbon

import "math"

// Clamp pulls v into the field range [lo, hi]. The scenario builder applies
// it to operator input before Calculate sees the value.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

