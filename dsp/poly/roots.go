package poly

import (
	"math"

	"github.com/cwbudde/algo-iirviz/internal/polyroot"
)

// Root finding errors, re-exported from the root finder.
var (
	ErrScalarHasNoRoots       = polyroot.ErrScalarHasNoRoots
	ErrLeadingCoefficientZero = polyroot.ErrLeadingCoefficientZero
	ErrFailedToConverge       = polyroot.ErrFailedToConverge
	ErrNonFiniteCoefficient   = polyroot.ErrNonFiniteCoefficient
)

// polishSteps bounds the Newton iterations applied to each root found by
// the deflating finder.
const polishSteps = 8

// Roots is a set of polynomial roots stored as parallel real and imaginary
// parts. Complex roots of a real polynomial appear in conjugate pairs.
type Roots struct {
	Real []float64
	Imag []float64
}

// Len returns the number of roots.
func (r Roots) Len() int {
	return len(r.Real)
}

// At returns root i as a complex number.
func (r Roots) At(i int) complex128 {
	return complex(r.Real[i], r.Imag[i])
}

// Complex returns all roots as complex numbers.
func (r Roots) Complex() []complex128 {
	out := make([]complex128, r.Len())
	for i := range out {
		out[i] = r.At(i)
	}

	return out
}

// Moduli returns |root| for every root.
func (r Roots) Moduli() []float64 {
	out := make([]float64, r.Len())
	for i := range out {
		out[i] = math.Hypot(r.Real[i], r.Imag[i])
	}

	return out
}

// FindRoots returns the roots of p. A scalar yields ErrScalarHasNoRoots. On
// ErrFailedToConverge the roots found before the failure are returned too.
// Every root is polished with Newton steps against p itself, removing the
// error accumulated over successive deflations.
func (p *Polynomial) FindRoots() (Roots, error) {
	p.ensure()

	if p.degree == 0 {
		return Roots{}, ErrScalarHasNoRoots
	}

	re := make([]float64, p.degree)
	im := make([]float64, p.degree)

	var rf polyroot.Finder

	n, err := rf.FindRoots(p.c, p.degree, re, im)
	re, im = re[:n], im[:n]
	p.polish(re, im)

	return Roots{Real: re, Imag: im}, err
}

// polish refines each root in place with Newton's method on the undeflated
// polynomial. A step is taken only while it lowers |p(z)| and stays within a
// quarter of the distance to the nearest other root, so that a root never
// migrates onto a neighbour.
func (p *Polynomial) polish(re, im []float64) {
	reach := make([]float64, len(re))
	for i := range re {
		reach[i] = math.Inf(1)

		for j := range re {
			if j != i {
				reach[i] = min(reach[i], math.Hypot(re[i]-re[j], im[i]-im[j]))
			}
		}

		reach[i] /= 4
	}

	for i := range re {
		zr, zi := re[i], im[i]

		for range polishSteps {
			pr, pi, dr, di := p.EvaluateComplexDerivative(zr, zi)
			den := dr*dr + di*di
			if den == 0 || (pr == 0 && pi == 0) {
				break
			}

			// (pr + j*pi) / (dr + j*di)
			sr := (pr*dr + pi*di) / den
			si := (pi*dr - pr*di) / den

			step := math.Hypot(sr, si)
			if step > reach[i] || math.IsNaN(step) {
				break
			}

			nr, ni := zr-sr, zi-si

			qr, qi := p.EvaluateComplex(nr, ni)
			if math.Hypot(qr, qi) >= math.Hypot(pr, pi) {
				break
			}

			zr, zi = nr, ni
		}

		re[i], im[i] = zr, zi
	}
}

// FromRoots builds lead * prod(x - r) for the given roots. Non-real roots are
// taken to come with their conjugate, which must also be listed.
func FromRoots(lead float64, roots Roots) *Polynomial {
	p := NewScalar(lead)

	for i := 0; i < roots.Len(); i++ {
		re, im := roots.Real[i], roots.Imag[i]
		switch {
		case im == 0:
			p.IncludeRealRoot(re)
		case im > 0:
			p.IncludeComplexConjugateRootPair(re, im)
		}
	}

	return p
}
