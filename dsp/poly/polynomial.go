// Package poly implements real-coefficient polynomials stored in increasing
// powers, with complex evaluation, root-factor construction and root finding.
package poly

import (
	"errors"
	"math"
)

// Coefficients smaller than this in magnitude are treated as absent when
// trimming the degree.
const trimEpsilon = 2.220446049250313e-16

// ErrDivideByZero is returned by Divide for a zero divisor.
var ErrDivideByZero = errors.New("poly: division by the zero polynomial")

// Polynomial is c[0] + c[1]*x + ... + c[degree]*x^degree. The degree is
// re-trimmed after every mutation so that c[degree] is non-negligible unless
// the polynomial is a scalar. The zero value is the scalar 0.
type Polynomial struct {
	c      []float64
	degree int
}

// New returns a polynomial with the given increasing-power coefficients.
// An empty slice yields the scalar 0.
func New(coeffs []float64) *Polynomial {
	p := &Polynomial{}
	if len(coeffs) == 0 {
		p.SetToScalar(0)
		return p
	}

	p.SetCoefficients(coeffs, len(coeffs)-1)

	return p
}

// NewScalar returns the constant polynomial s.
func NewScalar(s float64) *Polynomial {
	p := &Polynomial{}
	p.SetToScalar(s)

	return p
}

// NewLinear returns c0 + c1*x.
func NewLinear(c0, c1 float64) *Polynomial {
	p := &Polynomial{}
	p.SetToFirstOrder(c0, c1)

	return p
}

// NewQuadratic returns c0 + c1*x + c2*x^2.
func NewQuadratic(c0, c1, c2 float64) *Polynomial {
	p := &Polynomial{}
	p.SetToQuadratic(c0, c1, c2)

	return p
}

// SetCoefficients copies coeffs[0..degree] into p and trims the degree.
// It panics if degree is negative or exceeds len(coeffs)-1.
func (p *Polynomial) SetCoefficients(coeffs []float64, degree int) {
	if degree < 0 || degree >= len(coeffs) {
		panic("poly: degree out of range")
	}

	p.resize(degree)
	copy(p.c, coeffs[:degree+1])
	p.trim()
}

// SetToScalar makes p the constant s.
func (p *Polynomial) SetToScalar(s float64) {
	p.resize(0)
	p.c[0] = s
}

// SetToFirstOrder makes p the polynomial c0 + c1*x.
func (p *Polynomial) SetToFirstOrder(c0, c1 float64) {
	p.resize(1)
	p.c[0], p.c[1] = c0, c1
	p.trim()
}

// SetToQuadratic makes p the polynomial c0 + c1*x + c2*x^2.
func (p *Polynomial) SetToQuadratic(c0, c1, c2 float64) {
	p.resize(2)
	p.c[0], p.c[1], p.c[2] = c0, c1, c2
	p.trim()
}

// Degree returns the trimmed degree. Scalars, including 0, have degree 0.
func (p *Polynomial) Degree() int {
	return p.degree
}

// Coefficient returns the coefficient of x^i, or 0 outside [0, Degree()].
func (p *Polynomial) Coefficient(i int) float64 {
	if i < 0 || i > p.degree || i >= len(p.c) {
		return 0
	}

	return p.c[i]
}

// SetCoefficient sets the coefficient of x^i, growing the polynomial when i
// exceeds the current degree. Negative indices are ignored.
func (p *Polynomial) SetCoefficient(i int, v float64) {
	if i < 0 {
		return
	}

	p.ensure()

	if i > p.degree {
		old := p.degree
		p.resize(i)

		for j := old + 1; j < i; j++ {
			p.c[j] = 0
		}
	}

	p.c[i] = v
	p.trim()
}

// Coefficients returns a copy of c[0..Degree()].
func (p *Polynomial) Coefficients() []float64 {
	p.ensure()

	out := make([]float64, p.degree+1)
	copy(out, p.c[:p.degree+1])

	return out
}

// IsScalar reports whether p has degree 0.
func (p *Polynomial) IsScalar() bool {
	return p.degree == 0
}

// Clone returns an independent copy of p.
func (p *Polynomial) Clone() *Polynomial {
	return New(p.Coefficients())
}

// ensure gives the zero value its scalar 0 storage.
func (p *Polynomial) ensure() {
	if len(p.c) == 0 {
		p.c = make([]float64, 1)
		p.degree = 0
	}
}

// resize sets the degree, reusing capacity. New entries are not cleared.
func (p *Polynomial) resize(degree int) {
	if cap(p.c) < degree+1 {
		c := make([]float64, degree+1)
		copy(c, p.c)
		p.c = c
	} else {
		p.c = p.c[:degree+1]
	}

	p.degree = degree
}

// trim drops negligible leading coefficients.
func (p *Polynomial) trim() {
	for p.degree > 0 && math.Abs(p.c[p.degree]) < trimEpsilon {
		p.c[p.degree] = 0
		p.degree--
	}

	p.c = p.c[:p.degree+1]
}
