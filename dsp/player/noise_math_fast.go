//go:build fastmath

package player

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathLog computes ln(x) using fast approximation.
func mathLog(x float64) float64 {
	return approx.FastLog(x)
}

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}

// sincos2Pi uses the standard library; algo-approx has no sine.
func sincos2Pi(x float64) (float64, float64) {
	return math.Sincos(2 * math.Pi * x)
}
