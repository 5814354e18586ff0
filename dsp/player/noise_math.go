//go:build !fastmath

package player

import "math"

func mathLog(x float64) float64 {
	return math.Log(x)
}

func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}

func sincos2Pi(x float64) (float64, float64) {
	return math.Sincos(2 * math.Pi * x)
}
