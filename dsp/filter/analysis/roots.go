package analysis

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
	"github.com/cwbudde/algo-iirviz/dsp/poly"
)

// RootResult holds the zeros and poles of a coefficient set.
type RootResult struct {
	Zeros poly.Roots
	Poles poly.Roots
	// ZeroOrder and PoleOrder are the highest non-zero feedforward and
	// feedback lags, which are the degrees before trimming.
	ZeroOrder int
	PoleOrder int
}

// Stability classifies the poles.
func (r RootResult) Stability() Stability {
	return Classify(r.Poles)
}

// ZeroPolynomial returns sum_i a_i z^(N-i), where N is the highest lag with
// a non-zero feedforward coefficient. Its roots are the zeros of H(z).
func ZeroPolynomial(c iir.Coefficients) *poly.Polynomial {
	n := c.HighestFeedforwardLag()

	p := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		p[n-i] = c.A[i]
	}

	return poly.New(p)
}

// PolePolynomial returns z^M - sum_{j>=1} b_j z^(M-j), where M is the highest
// lag with a non-zero feedback coefficient. Its roots are the poles of H(z).
func PolePolynomial(c iir.Coefficients) *poly.Polynomial {
	m := c.HighestFeedbackLag()

	p := make([]float64, m+1)
	p[m] = 1

	for j := 1; j <= m; j++ {
		p[m-j] = -c.B[j]
	}

	return poly.New(p)
}

// FindZeros returns the zeros of H(z). A zero polynomial of degree 0 has no
// roots and yields an empty set without error.
func FindZeros(c iir.Coefficients) (poly.Roots, error) {
	return findRoots(ZeroPolynomial(c))
}

// FindPoles returns the poles of H(z). A pure feedforward filter has none.
func FindPoles(c iir.Coefficients) (poly.Roots, error) {
	return findRoots(PolePolynomial(c))
}

// FindRoots computes zeros and poles. On a convergence failure the partial
// result is returned together with the error.
func FindRoots(c iir.Coefficients) (RootResult, error) {
	res := RootResult{
		ZeroOrder: c.HighestFeedforwardLag(),
		PoleOrder: c.HighestFeedbackLag(),
	}

	var err error

	res.Zeros, err = FindZeros(c)
	if err != nil {
		return res, fmt.Errorf("analysis: zeros: %w", err)
	}

	res.Poles, err = FindPoles(c)
	if err != nil {
		return res, fmt.Errorf("analysis: poles: %w", err)
	}

	return res, nil
}

func findRoots(p *poly.Polynomial) (poly.Roots, error) {
	roots, err := p.FindRoots()
	if errors.Is(err, poly.ErrScalarHasNoRoots) {
		return poly.Roots{}, nil
	}

	return roots, err
}
