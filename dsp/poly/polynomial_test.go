package poly

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-iirviz/internal/testutil"
)

func TestTrimOnSet(t *testing.T) {
	p := New([]float64{1, 2, 1e-17, 0})
	if p.Degree() != 1 {
		t.Fatalf("degree = %d, want 1", p.Degree())
	}

	if got := p.Coefficient(2); got != 0 {
		t.Fatalf("c2 = %v, want 0", got)
	}

	p.SetCoefficients([]float64{0, 0, 0}, 2)
	if p.Degree() != 0 || p.Coefficient(0) != 0 {
		t.Fatalf("zero polynomial: degree=%d c0=%v", p.Degree(), p.Coefficient(0))
	}

	if !p.IsScalar() {
		t.Fatal("expected scalar")
	}
}

func TestZeroValueIsScalarZero(t *testing.T) {
	var p Polynomial
	if p.Degree() != 0 || p.EvaluateReal(3) != 0 {
		t.Fatalf("zero value: degree=%d p(3)=%v", p.Degree(), p.EvaluateReal(3))
	}

	if _, err := p.FindRoots(); !errors.Is(err, ErrScalarHasNoRoots) {
		t.Fatalf("err=%v want=%v", err, ErrScalarHasNoRoots)
	}

	p.SetCoefficient(2, 1)
	if p.Degree() != 2 || p.Coefficient(1) != 0 {
		t.Fatalf("after SetCoefficient: %v", p.Coefficients())
	}
}

func TestSetCoefficientTrims(t *testing.T) {
	p := NewQuadratic(1, 2, 3)
	p.SetCoefficient(2, 0)

	if p.Degree() != 1 {
		t.Fatalf("degree = %d, want 1", p.Degree())
	}
}

func TestSetCoefficientsPanicsOnBadDegree(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	New(nil).SetCoefficients([]float64{1, 2}, 2)
}

func TestEvaluate(t *testing.T) {
	p := New([]float64{1, -3, 2}) // 2x^2 - 3x + 1

	if got := p.EvaluateReal(2); got != 3 {
		t.Fatalf("p(2) = %v, want 3", got)
	}

	v, dv := p.EvaluateRealDerivative(2)
	if v != 3 || dv != 5 {
		t.Fatalf("p(2), p'(2) = %v, %v, want 3, 5", v, dv)
	}

	// p(j) = 2j^2 - 3j + 1 = -1 - 3j
	re, im := p.EvaluateImaginary(1)
	if re != -1 || im != -3 {
		t.Fatalf("p(j) = %v%+vj, want -1-3j", re, im)
	}
}

func TestEvaluateComplexDerivative(t *testing.T) {
	p := New([]float64{0.3, -1.2, 0.5, 2, -0.7})
	z := complex(0.4, -0.9)

	pr, pi, dr, di := p.EvaluateComplexDerivative(real(z), imag(z))

	want := p.Evaluate(z)
	if cmplx.Abs(complex(pr, pi)-want) > 1e-14 {
		t.Fatalf("p(z) = %v, want %v", complex(pr, pi), want)
	}

	wantD := p.Derivative().Evaluate(z)
	if cmplx.Abs(complex(dr, di)-wantD) > 1e-13 {
		t.Fatalf("p'(z) = %v, want %v", complex(dr, di), wantD)
	}
}

func TestArithmetic(t *testing.T) {
	a := New([]float64{1, 2})    // 1 + 2x
	b := New([]float64{0, 1, 3}) // x + 3x^2

	testutil.RequireSliceNearlyEqual(t, Sum(a, b).Coefficients(), []float64{1, 3, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, Difference(a, b).Coefficients(), []float64{1, 1, -3}, 0)
	testutil.RequireSliceNearlyEqual(t, Product(a, b).Coefficients(), []float64{0, 1, 5, 6}, 0)

	// Operands are unchanged by the helpers.
	testutil.RequireSliceNearlyEqual(t, a.Coefficients(), []float64{1, 2}, 0)

	c := New([]float64{1, 2, 3})
	c.Sub(New([]float64{0, 0, 3}))
	if c.Degree() != 1 {
		t.Fatalf("cancellation: degree = %d, want 1", c.Degree())
	}

	c.AddScalar(1).MulScalar(2).SubScalar(1).DivScalar(2).Neg()
	testutil.RequireSliceNearlyEqual(t, c.Coefficients(), []float64{-1.5, -2}, 0)

	c.MulScalar(0)
	if c.Degree() != 0 {
		t.Fatalf("degree = %d, want 0", c.Degree())
	}
}

func TestDerivativeIntegral(t *testing.T) {
	p := New([]float64{4, 3, 6})

	testutil.RequireSliceNearlyEqual(t, p.Derivative().Coefficients(), []float64{3, 12}, 0)
	testutil.RequireSliceNearlyEqual(t, p.Integral().Coefficients(), []float64{0, 4, 1.5, 2}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, p.Integral().Derivative().Coefficients(), p.Coefficients(), 1e-15)

	if d := NewScalar(5).Derivative(); d.Degree() != 0 || d.Coefficient(0) != 0 {
		t.Fatalf("derivative of scalar = %v", d.Coefficients())
	}
}

func TestIncludeRootsRoundTrip(t *testing.T) {
	p := NewScalar(1.5)
	p.IncludeRealRoot(0.5)
	p.IncludeComplexConjugateRootPair(-0.2, 0.7)
	p.IncludeRealRoot(-1.1)
	p.IncludeComplexConjugateRootPair(0.6, 0.3)

	if p.Degree() != 6 {
		t.Fatalf("degree = %d, want 6", p.Degree())
	}

	roots, err := p.FindRoots()
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}

	want := []complex128{0.5, -0.2 + 0.7i, -0.2 - 0.7i, -1.1, 0.6 + 0.3i, 0.6 - 0.3i}
	testutil.RequireRootsNearlyEqual(t, roots.Complex(), want, 1e-5)

	rebuilt := FromRoots(1.5, roots)
	testutil.RequireSliceNearlyEqual(t, rebuilt.Coefficients(), p.Coefficients(), 1e-4)
}

func TestIncludeRootsStartsFromZeroPolynomial(t *testing.T) {
	var p Polynomial
	p.IncludeRealRoot(0.5)
	p.IncludeComplexConjugateRootPair(0.2, 0.3)

	testutil.RequireSliceNearlyEqual(t, p.Coefficients(), []float64{-0.065, 0.33, -0.9, 1}, 1e-12)

	roots, err := p.FindRoots()
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}

	testutil.RequireRootsNearlyEqual(t, roots.Complex(), []complex128{0.5, 0.2 + 0.3i, 0.2 - 0.3i}, 1e-10)

	q := New(nil).IncludeComplexConjugateRootPair(0, 1)
	testutil.RequireSliceNearlyEqual(t, q.Coefficients(), []float64{1, 0, 1}, 0)
}

// randomRoots draws degree roots with modulus at most 1.5, complex ones in
// conjugate pairs, keeping every two roots at least minGap apart.
func randomRoots(rng *rand.Rand, degree int, minGap float64) []complex128 {
	out := make([]complex128, 0, degree)

	fits := func(z complex128) bool {
		for _, w := range out {
			if cmplx.Abs(z-w) < minGap || cmplx.Abs(cmplx.Conj(z)-w) < minGap {
				return false
			}
		}

		return true
	}

	for tries := 0; len(out) < degree; tries++ {
		if tries == 1000 {
			out, tries = out[:0], 0
		}

		if degree-len(out) >= 2 && rng.Intn(2) == 0 {
			z := cmplx.Rect(0.2+1.3*rng.Float64(), math.Pi*rng.Float64())
			if imag(z) >= minGap/2 && fits(z) {
				out = append(out, z, cmplx.Conj(z))
			}

			continue
		}

		z := complex(3*rng.Float64()-1.5, 0)
		if fits(z) {
			out = append(out, z)
		}
	}

	return out
}

func TestFindRootsRandomFactors(t *testing.T) {
	rng := rand.New(rand.NewSource(20240611))

	for degree := 1; degree <= 12; degree++ {
		for trial := range 100 {
			want := randomRoots(rng, degree, 0.2)

			var p Polynomial
			for _, z := range want {
				switch {
				case imag(z) == 0:
					p.IncludeRealRoot(real(z))
				case imag(z) > 0:
					p.IncludeComplexConjugateRootPair(real(z), imag(z))
				}
			}

			roots, err := p.FindRoots()
			if err != nil {
				t.Fatalf("degree %d trial %d: FindRoots: %v", degree, trial, err)
			}

			if roots.Len() != degree {
				t.Fatalf("degree %d trial %d: %d roots", degree, trial, roots.Len())
			}

			testutil.RequireRootsNearlyEqual(t, roots.Complex(), want, 1e-4)
		}
	}
}

func TestFindRootsRejectsNonFinite(t *testing.T) {
	for _, coeffs := range [][]float64{
		{1, math.NaN(), 0.5, 1},
		{1, 2, math.Inf(1), 1},
	} {
		if _, err := New(coeffs).FindRoots(); !errors.Is(err, ErrNonFiniteCoefficient) {
			t.Fatalf("%v: err=%v want=%v", coeffs, err, ErrNonFiniteCoefficient)
		}
	}
}

func TestRootsEvaluateToZero(t *testing.T) {
	p := New([]float64{-0.25, 0.1, 0.6, -0.3, 0.2, 1})

	roots, err := p.FindRoots()
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}

	if roots.Len() != 5 {
		t.Fatalf("roots = %d, want 5", roots.Len())
	}

	for i := 0; i < roots.Len(); i++ {
		if r := cmplx.Abs(p.Evaluate(roots.At(i))); r > 1e-4 {
			t.Fatalf("|p(%v)| = %v", roots.At(i), r)
		}
	}
}

func TestRootsModuli(t *testing.T) {
	r := Roots{Real: []float64{3, -0.5}, Imag: []float64{4, 0}}
	testutil.RequireSliceNearlyEqual(t, r.Moduli(), []float64{5, 0.5}, 1e-15)
}

func TestDivide(t *testing.T) {
	// (x^3 - 2x^2 - 4) / (x - 3) = x^2 + x + 3, remainder 5
	p := New([]float64{-4, 0, -2, 1})

	q, r, err := p.Divide(New([]float64{-3, 1}))
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, q.Coefficients(), []float64{3, 1, 1}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, r.Coefficients(), []float64{5}, 1e-15)

	back := Product(q, New([]float64{-3, 1})).Add(r)
	testutil.RequireSliceNearlyEqual(t, back.Coefficients(), p.Coefficients(), 1e-14)
}

func TestDivideByScalarAndSmaller(t *testing.T) {
	p := New([]float64{2, 4})

	q, r, err := p.Divide(NewScalar(2))
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, q.Coefficients(), []float64{1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, r.Coefficients(), []float64{0}, 0)

	q, r, err = p.Divide(NewQuadratic(0, 0, 1))
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}

	if q.Degree() != 0 || q.Coefficient(0) != 0 {
		t.Fatalf("quotient = %v, want 0", q.Coefficients())
	}

	testutil.RequireSliceNearlyEqual(t, r.Coefficients(), []float64{2, 4}, 0)
}

func TestDivideByZero(t *testing.T) {
	if _, _, err := New([]float64{1, 1}).Divide(NewScalar(0)); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("err=%v want=%v", err, ErrDivideByZero)
	}
}

func TestDivScalarByZeroFollowsIEEE(t *testing.T) {
	p := NewLinear(1, -1).DivScalar(0)
	if !math.IsInf(p.Coefficient(0), 1) || !math.IsInf(p.Coefficient(1), -1) {
		t.Fatalf("got %v, want [+Inf -Inf]", p.Coefficients())
	}
}

func TestFindRootsLowDegree(t *testing.T) {
	roots, err := NewLinear(1, -4).FindRoots()
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}

	testutil.RequireRootsNearlyEqual(t, roots.Complex(), []complex128{0.25}, 0)

	roots, err = NewQuadratic(5, -2, 1).FindRoots()
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}

	testutil.RequireRootsNearlyEqual(t, roots.Complex(), []complex128{1 + 2i, 1 - 2i}, 1e-14)
}
