// Package money holds the rounding rules shared by every balance computation.
//
// All amounts in the system are 2-decimal currency values stored as float64.
// To keep binary floating-point drift from compounding across many small
// additions, callers apply Round2 after every running-sum update, not just at
// the end, and compare against Epsilon instead of exact zero.
package money

import "math"

// Epsilon is the smallest amount treated as non-zero. Balances and suggested
// payments whose magnitude is at or below this threshold are considered
// settled and excluded from output.
const Epsilon = 0.01

// Round2 rounds x to 2 decimal places using half-up rounding.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// IsZero reports whether x is effectively zero (|x| <= Epsilon).
func IsZero(x float64) bool {
	return math.Abs(x) <= Epsilon
}
