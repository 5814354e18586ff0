package polyroot

import "math"

// Type codes returned by calcSC.
const (
	dividedByC = 1 // |c| > |d|
	dividedByD = 2 // |d| >= |c|
	nearlyDiv  = 3 // the quadratic almost divides K
)

// quadraticSyntheticDivision divides p (nn coefficients, decreasing powers)
// by z^2 + u*z + v. The quotient is stored in q and the remainder is
// returned as a*(z+u) + b.
func quadraticSyntheticDivision(nn int, u, v float64, p, q []float64) (a, b float64) {
	b = p[0]
	q[0] = b
	a = p[1] - u*b
	q[1] = a

	for i := 2; i < nn; i++ {
		c := p[i] - u*a - v*b
		q[i] = c
		b = a
		a = c
	}

	return a, b
}

// calcSC divides K by the current quadratic and computes the scalar
// quantities used to form the next K polynomial and the new estimates.
func (rf *Finder) calcSC() int {
	n := rf.n

	rf.c, rf.d = quadraticSyntheticDivision(n, rf.u, rf.v, rf.k, rf.qk)

	if math.Abs(rf.c) <= math.Abs(rf.k[n-1])*etaN2 && math.Abs(rf.d) <= math.Abs(rf.k[n-2])*etaN2 {
		return nearlyDiv
	}

	if math.Abs(rf.d) >= math.Abs(rf.c) {
		rf.e = rf.a / rf.d
		rf.f = rf.c / rf.d
		rf.g = rf.u * rf.b
		rf.h = rf.v * rf.b
		rf.a3 = (rf.a+rf.g)*rf.e + rf.h*(rf.b/rf.d)
		rf.a1 = rf.b*rf.f - rf.a
		rf.a7 = (rf.f+rf.u)*rf.a + rf.h

		return dividedByD
	}

	rf.e = rf.a / rf.c
	rf.f = rf.d / rf.c
	rf.g = rf.u * rf.e
	rf.h = rf.v * rf.b
	rf.a3 = rf.a*rf.e + (rf.h/rf.c+rf.g)*rf.b
	rf.a1 = rf.b - rf.a*(rf.d/rf.c)
	rf.a7 = rf.a + rf.g*rf.d + rf.h*rf.f

	return dividedByC
}

// nextK computes the next K polynomial from the scalars of calcSC.
func (rf *Finder) nextK(typ int) {
	n := rf.n
	k, qk, qp := rf.k, rf.qk, rf.qp

	if typ == nearlyDiv {
		k[0], k[1] = 0, 0
		for i := 2; i < n; i++ {
			k[i] = qk[i-2]
		}

		return
	}

	temp := rf.a
	if typ == dividedByC {
		temp = rf.b
	}

	if math.Abs(rf.a1) <= math.Abs(temp)*etaN {
		// a1 is nearly zero: use the unscaled form.
		k[0] = 0
		k[1] = -rf.a7 * qp[0]

		for i := 2; i < n; i++ {
			k[i] = rf.a3*qk[i-2] - rf.a7*qp[i-1]
		}

		return
	}

	rf.a7 /= rf.a1
	rf.a3 /= rf.a1
	k[0] = qp[0]
	k[1] = qp[1] - rf.a7*qp[0]

	for i := 2; i < n; i++ {
		k[i] = rf.a3*qk[i-2] - rf.a7*qp[i-1] + qp[i]
	}
}

// newest computes new estimates of the quadratic coefficients. When the
// estimate is undefined the previous values uu, vv are returned unchanged.
func (rf *Finder) newest(typ int, uu, vv float64) (float64, float64) {
	if typ == nearlyDiv {
		return 0, 0
	}

	var a4, a5 float64
	if typ == dividedByD {
		a4 = (rf.a+rf.g)*rf.f + rf.h
		a5 = (rf.f+rf.u)*rf.c + rf.v*rf.d
	} else {
		a4 = rf.a + rf.u*rf.b + rf.h*rf.f
		a5 = rf.c + (rf.u+rf.v*rf.f)*rf.d
	}

	n := rf.n
	b1 := -rf.k[n-1] / rf.p[n]
	b2 := -(rf.k[n-2] + b1*rf.p[n-1]) / rf.p[n]
	c1 := rf.v * b2 * rf.a1
	c2 := b1 * rf.a7
	c3 := b1 * b1 * rf.a3
	c4 := c1 - c2 - c3

	temp := a5 + b1*a4 - c4
	if temp == 0 {
		return uu, vv
	}

	return rf.u - (rf.u*(c3+c2)+rf.v*(b1*rf.a1+b2*rf.a7))/temp, rf.v * (1 + c4/temp)
}
