package testutil

import "testing"

func TestPolyFromRoots(t *testing.T) {
	// 2(z-1)(z+2) = 2z^2 + 2z - 4
	got := PolyFromRoots(2, []complex128{1, -2})
	RequireSliceNearlyEqual(t, got, []float64{-4, 2, 2}, 1e-15)

	// (z - (1+j))(z - (1-j)) = z^2 - 2z + 2
	got = PolyFromRoots(1, []complex128{1 + 1i, 1 - 1i})
	RequireSliceNearlyEqual(t, got, []float64{2, -2, 1}, 1e-15)
}

func TestRequireRootsNearlyEqualUnordered(t *testing.T) {
	RequireRootsNearlyEqual(t,
		[]complex128{0.5 - 0.25i, -1, 0.5 + 0.25i},
		[]complex128{-1, 0.5 + 0.25i, 0.5 - 0.25i},
		1e-12)
}
