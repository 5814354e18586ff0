// Package polyroot finds the roots of real-coefficient polynomials with the
// Jenkins-Traub three-stage algorithm (RPOLY) and provides the small complex
// helpers shared by the analysis packages.
package polyroot

import (
	"errors"
	"math"
)

var (
	// ErrScalarHasNoRoots is returned for polynomials of degree 0.
	ErrScalarHasNoRoots = errors.New("polyroot: scalar polynomial has no roots")
	// ErrLeadingCoefficientZero is returned when the highest-degree
	// coefficient is exactly zero.
	ErrLeadingCoefficientZero = errors.New("polyroot: leading coefficient is zero")
	// ErrFailedToConverge is returned when the shift budget is exhausted
	// before the polynomial has been fully deflated. The roots found so far
	// are still reported.
	ErrFailedToConverge = errors.New("polyroot: failed to converge")
	// ErrNonFiniteCoefficient is returned when a coefficient is NaN or ±Inf.
	ErrNonFiniteCoefficient = errors.New("polyroot: non-finite coefficient")
)

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// SolveQuadratic returns the roots of a*z^2 + b*z + c. The smaller root is
// returned first as (sr, si), the larger as (lr, li). The discriminant is
// formed without cancellation so that widely separated roots keep full
// relative accuracy.
func SolveQuadratic(a, b, c float64) (sr, si, lr, li float64) {
	if a == 0 {
		if b != 0 {
			sr = -c / b
		}

		return sr, 0, 0, 0
	}

	if c == 0 {
		return 0, 0, -b / a, 0
	}

	bh := b / 2

	var d, e float64
	if math.Abs(bh) < math.Abs(c) {
		e = a
		if c < 0 {
			e = -a
		}

		e = bh*(bh/math.Abs(c)) - e
		d = math.Sqrt(math.Abs(e)) * math.Sqrt(math.Abs(c))
	} else {
		e = 1 - (a/bh)*(c/bh)
		d = math.Sqrt(math.Abs(e)) * math.Abs(bh)
	}

	if e < 0 {
		// Complex conjugate pair.
		sr = -bh / a
		lr = sr
		si = math.Abs(d / a)
		li = -si

		return sr, si, lr, li
	}

	if bh >= 0 {
		d = -d
	}

	lr = (-bh + d) / a
	if lr != 0 {
		sr = (c / lr) / a
	}

	return sr, 0, lr, 0
}
