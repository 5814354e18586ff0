package poly

// Add sets p to p + q and returns p.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	p.combine(q, 1)
	return p
}

// Sub sets p to p - q and returns p.
func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	p.combine(q, -1)
	return p
}

func (p *Polynomial) combine(q *Polynomial, sign float64) {
	p.ensure()

	qc := q.Coefficients()
	if q.degree > p.degree {
		old := p.degree
		p.resize(q.degree)

		for i := old + 1; i <= p.degree; i++ {
			p.c[i] = 0
		}
	}

	for i, v := range qc {
		p.c[i] += sign * v
	}

	p.trim()
}

// AddScalar adds s to the constant term and returns p.
func (p *Polynomial) AddScalar(s float64) *Polynomial {
	p.ensure()
	p.c[0] += s

	return p
}

// SubScalar subtracts s from the constant term and returns p.
func (p *Polynomial) SubScalar(s float64) *Polynomial {
	return p.AddScalar(-s)
}

// MulScalar scales every coefficient by s and returns p.
func (p *Polynomial) MulScalar(s float64) *Polynomial {
	p.ensure()

	for i := range p.c {
		p.c[i] *= s
	}

	p.trim()

	return p
}

// DivScalar divides every coefficient by s and returns p. Division by zero
// follows IEEE semantics.
func (p *Polynomial) DivScalar(s float64) *Polynomial {
	p.ensure()

	for i := range p.c {
		p.c[i] /= s
	}

	p.trim()

	return p
}

// Neg negates p and returns it.
func (p *Polynomial) Neg() *Polynomial {
	return p.MulScalar(-1)
}

// Mul sets p to the product p * q and returns p.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	a := p.Coefficients()
	b := q.Coefficients()

	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}

		for j, y := range b {
			out[i+j] += x * y
		}
	}

	p.SetCoefficients(out, len(out)-1)

	return p
}

// Sum returns a + b without modifying either operand.
func Sum(a, b *Polynomial) *Polynomial {
	return a.Clone().Add(b)
}

// Difference returns a - b without modifying either operand.
func Difference(a, b *Polynomial) *Polynomial {
	return a.Clone().Sub(b)
}

// Product returns a * b without modifying either operand.
func Product(a, b *Polynomial) *Polynomial {
	return a.Clone().Mul(b)
}

// Derivative returns dp/dx as a new polynomial.
func (p *Polynomial) Derivative() *Polynomial {
	if p.degree == 0 {
		return NewScalar(0)
	}

	out := make([]float64, p.degree)
	for i := 1; i <= p.degree; i++ {
		out[i-1] = float64(i) * p.c[i]
	}

	return New(out)
}

// Integral returns the antiderivative of p with integration constant 0.
func (p *Polynomial) Integral() *Polynomial {
	p.ensure()

	out := make([]float64, p.degree+2)
	for i := 0; i <= p.degree; i++ {
		out[i+1] = p.c[i] / float64(i+1)
	}

	return New(out)
}

// IncludeRealRoot multiplies p by (x - r) and returns p. The zero
// polynomial counts as 1, so roots can be collected onto a zero value.
func (p *Polynomial) IncludeRealRoot(r float64) *Polynomial {
	p.startProduct()
	return p.Mul(NewLinear(-r, 1))
}

// IncludeComplexConjugateRootPair multiplies p by
// (x - (re+j*im))(x - (re-j*im)) = x^2 - 2re*x + re^2 + im^2 and returns p.
func (p *Polynomial) IncludeComplexConjugateRootPair(re, im float64) *Polynomial {
	p.startProduct()
	return p.Mul(NewQuadratic(re*re+im*im, -2*re, 1))
}

// startProduct turns the zero polynomial into 1 so that root factors can be
// accumulated onto a fresh value.
func (p *Polynomial) startProduct() {
	p.ensure()

	if p.degree == 0 && p.c[0] == 0 {
		p.c[0] = 1
	}
}

// Divide performs polynomial long division p = quotient*divisor + remainder.
// The remainder has a lower degree than the divisor unless the divisor is a
// scalar, in which case the remainder is 0.
func (p *Polynomial) Divide(divisor *Polynomial) (quotient, remainder *Polynomial, err error) {
	dc := divisor.Coefficients()
	dd := len(dc) - 1

	if dd == 0 && dc[0] == 0 {
		return nil, nil, ErrDivideByZero
	}

	rem := p.Coefficients()
	nd := len(rem) - 1

	if nd < dd {
		return NewScalar(0), New(rem), nil
	}

	q := make([]float64, nd-dd+1)
	lead := dc[dd]

	for i := nd - dd; i >= 0; i-- {
		f := rem[i+dd] / lead
		q[i] = f

		for j := 0; j <= dd; j++ {
			rem[i+j] -= f * dc[j]
		}

		rem[i+dd] = 0
	}

	if dd == 0 {
		return New(q), NewScalar(0), nil
	}

	return New(q), New(rem[:dd]), nil
}
