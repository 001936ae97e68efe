package money

import "math"

// Round2 rounds a money value to 2 decimal places, half away from zero.
// Rounding happens on final values only; callers must not round intermediate
// products or the totals stop reconciling with their components.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Clamp bounds a score-like value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}
