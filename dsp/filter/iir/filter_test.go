package iir

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-iirviz/internal/testutil"
)

const eps = 1e-12

func coeffs(t *testing.T, order int, a, b map[int]float64) Coefficients {
	t.Helper()

	c, err := NewCoefficients(order)
	if err != nil {
		t.Fatalf("NewCoefficients: %v", err)
	}

	for i, v := range a {
		c.A[i] = v
	}

	for j, v := range b {
		c.B[j] = v
	}

	return c
}

func TestIdentityPassesExcitation(t *testing.T) {
	f := NewFilter(coeffs(t, 12, nil, nil))
	x := testutil.DeterministicNoise(7, 0.5, 256)

	for i, v := range x {
		if y := f.Step(v); y != v {
			t.Fatalf("sample %d: got %v, want %v", i, y, v)
		}
	}

	if got := f.Step(3); got != 1 {
		t.Fatalf("clamped output = %v, want 1", got)
	}

	if got := f.Output(); got != 3 {
		t.Fatalf("unclamped output = %v, want 3", got)
	}
}

func TestFeedforwardImpulseResponse(t *testing.T) {
	f := NewFilter(coeffs(t, 6, map[int]float64{0: 0.25, 1: 0.5, 2: 0.25}, nil))

	got := make([]float64, 6)
	f.ProcessBlock(got, testutil.Impulse(6, 0))
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.25, 0.5, 0.25, 0, 0, 0}, eps)
}

func TestOnePoleImpulseResponse(t *testing.T) {
	// y[n] = x[n] + 0.5 y[n-1]
	f := NewFilter(coeffs(t, 4, nil, map[int]float64{1: 0.5}))

	got := make([]float64, 8)
	f.ProcessBlock(got, testutil.Impulse(8, 0))

	for n, y := range got {
		if want := math.Pow(0.5, float64(n)); math.Abs(y-want) > eps {
			t.Fatalf("h[%d] = %v, want %v", n, y, want)
		}
	}
}

func TestFeedbackUsesFullHistory(t *testing.T) {
	// y[n] = x[n] + 0.5 y[n-2] with L = 3: the oldest feedback lag.
	f := NewFilter(coeffs(t, 6, nil, map[int]float64{2: 0.5}))

	got := make([]float64, 7)
	f.ProcessBlock(got, testutil.Impulse(7, 0))
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 0, 0.5, 0, 0.25, 0, 0.125}, eps)
}

func TestFeedbackIgnoresB0(t *testing.T) {
	f := NewFilter(coeffs(t, 4, nil, map[int]float64{0: 0.9}))

	if y := f.Step(0.5); y != 0.5 {
		t.Fatalf("y = %v, want 0.5", y)
	}

	if y := f.Step(0); y != 0 {
		t.Fatalf("y = %v, want 0", y)
	}
}

func TestResetRestartsFromExcitation(t *testing.T) {
	c := coeffs(t, 12, map[int]float64{1: -0.3, 4: 0.2}, map[int]float64{1: 0.6, 3: -0.2})
	x := testutil.DeterministicNoise(3, 0.5, 128)

	fresh := make([]float64, len(x))
	NewFilter(c).ProcessBlock(fresh, x)

	f := NewFilter(c)
	warm := make([]float64, 300)
	f.ProcessBlock(warm, testutil.DeterministicNoise(9, 0.5, len(warm)))
	f.Reset()

	again := make([]float64, len(x))
	f.ProcessBlock(again, x)
	testutil.RequireSliceNearlyEqual(t, again, fresh, 0)
}

func TestDeterministic(t *testing.T) {
	c := coeffs(t, 8, map[int]float64{2: 0.4}, map[int]float64{1: -0.5, 2: 0.1})
	x := testutil.DeterministicNoise(11, 0.5, 64)

	a := make([]float64, len(x))
	b := make([]float64, len(x))
	NewFilter(c).ProcessBlock(a, x)
	NewFilter(c).ProcessBlock(b, x)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestSetCoefficientsSameOrderDoesNotAllocate(t *testing.T) {
	c1 := coeffs(t, 12, nil, map[int]float64{1: 0.5})
	c2 := coeffs(t, 12, map[int]float64{1: 0.5}, nil)
	f := NewFilter(c1)

	allocs := testing.AllocsPerRun(100, func() {
		f.SetCoefficients(c2)
		f.Step(0.1)
		f.SetCoefficients(c1)
		f.Step(0.1)
	})

	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func TestSetCoefficientsResizes(t *testing.T) {
	f := NewFilter(coeffs(t, 4, nil, nil))
	f.Step(0.5)

	f.SetCoefficients(coeffs(t, 8, map[int]float64{3: 1}, nil))
	if f.Len() != 4 {
		t.Fatalf("len = %d, want 4", f.Len())
	}

	got := make([]float64, 5)
	f.ProcessBlock(got, testutil.Impulse(5, 0))
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 0, 0, 1, 0}, 0)
}
