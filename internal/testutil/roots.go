package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// PolyFromRoots expands lead * prod(z - r) and returns the real parts of the
// coefficients in increasing powers. Complex roots must come in conjugate
// pairs for the result to be real.
func PolyFromRoots(lead float64, roots []complex128) []float64 {
	c := []complex128{complex(lead, 0)}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i+1] += v
			next[i] -= v * r
		}
		c = next
	}

	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

// RequireRootsNearlyEqual fails t unless got and want contain the same roots
// in any order. Each wanted root is matched to the closest unused root and
// the distance is checked against tol scaled by max(1, |want|).
func RequireRootsNearlyEqual(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("root count: got %d (%v), want %d (%v)", len(got), got, len(want), want)
	}

	used := make([]bool, len(got))
	for _, w := range want {
		best := -1
		bestDist := math.Inf(1)
		for j, g := range got {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(g - w); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 || bestDist > tol*math.Max(1, cmplx.Abs(w)) {
			t.Fatalf("root %v not found: got %v (closest dist %v, tol %v)", w, got, bestDist, tol)
		}
		used[best] = true
	}
}
