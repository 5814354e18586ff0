package poly

// EvaluateReal returns p(x) using Horner's scheme.
func (p *Polynomial) EvaluateReal(x float64) float64 {
	if len(p.c) == 0 {
		return 0
	}

	v := p.c[p.degree]
	for i := p.degree - 1; i >= 0; i-- {
		v = v*x + p.c[i]
	}

	return v
}

// EvaluateRealDerivative returns p(x) and p'(x) in one Horner pass.
func (p *Polynomial) EvaluateRealDerivative(x float64) (float64, float64) {
	if len(p.c) == 0 {
		return 0, 0
	}

	v := p.c[p.degree]
	dv := 0.0

	for i := p.degree - 1; i >= 0; i-- {
		dv = dv*x + v
		v = v*x + p.c[i]
	}

	return v, dv
}

// EvaluateImaginary returns p(j*xi) as real and imaginary parts.
func (p *Polynomial) EvaluateImaginary(xi float64) (float64, float64) {
	return p.EvaluateComplex(0, xi)
}

// EvaluateComplex returns p(re + j*im) as real and imaginary parts.
func (p *Polynomial) EvaluateComplex(re, im float64) (float64, float64) {
	if len(p.c) == 0 {
		return 0, 0
	}

	vr, vi := p.c[p.degree], 0.0
	for i := p.degree - 1; i >= 0; i-- {
		vr, vi = vr*re-vi*im+p.c[i], vr*im+vi*re
	}

	return vr, vi
}

// EvaluateComplexDerivative returns p(z) and p'(z) at z = re + j*im using the
// Birge-Vieta scheme: the derivative accumulates the partial Horner sums.
func (p *Polynomial) EvaluateComplexDerivative(re, im float64) (pr, pi, dr, di float64) {
	if len(p.c) == 0 {
		return 0, 0, 0, 0
	}

	pr = p.c[p.degree]
	for i := p.degree - 1; i >= 0; i-- {
		dr, di = dr*re-di*im+pr, dr*im+di*re+pi
		pr, pi = pr*re-pi*im+p.c[i], pr*im+pi*re
	}

	return pr, pi, dr, di
}

// Evaluate returns p(z).
func (p *Polynomial) Evaluate(z complex128) complex128 {
	r, i := p.EvaluateComplex(real(z), imag(z))
	return complex(r, i)
}
