package polyroot

import "math"

// Convergence constants. They are the single-precision machine parameters:
// the stopping criteria were tuned against them and stay loose enough for
// float64 arithmetic to converge reliably.
const (
	base   = 2.0
	eta    = 0x1p-23 // FLT_EPSILON
	are    = eta     // error bound on addition
	mre    = eta     // error bound on multiplication
	infin  = math.MaxFloat32
	smalno = 0x1p-126 // FLT_MIN
	lo     = smalno / eta
	etaN   = 10 * eta
	etaN2  = 100 * eta

	// The initial shift is rotated by 94 degrees between attempts.
	rotCos     = -0.069756474
	rotSin     = 0.99756405
	startAngle = 0.70710678

	maxShifts = 20
)

// Finder computes the roots of real polynomials. The zero value is ready to
// use. Its scratch buffers are reused across calls, so a Finder must not be
// shared between goroutines.
type Finder struct {
	p, qp, k, qk, svk []float64
	temp, pt          []float64

	n, nn int // degree and coefficient count of the current deflated polynomial

	sr, si, u, v       float64
	a, b, c, d         float64
	a1, a3, a7         float64
	e, f, g, h         float64
	szr, szi, lzr, lzi float64
}

// FindRoots computes the roots of the polynomial whose coefficients are given
// in increasing powers, coeffs[0] + coeffs[1]*z + ... + coeffs[degree]*z^degree.
// The real and imaginary parts are written to re and im, which must hold at
// least degree elements. It returns the number of roots found.
//
// On ErrFailedToConverge the roots that were deflated before the failure are
// still written and counted.
//
//nolint:cyclop
func (rf *Finder) FindRoots(coeffs []float64, degree int, re, im []float64) (int, error) {
	if degree < 1 {
		return 0, ErrScalarHasNoRoots
	}

	for _, v := range coeffs[:degree+1] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNonFiniteCoefficient
		}
	}

	if coeffs[degree] == 0 {
		return 0, ErrLeadingCoefficientZero
	}

	_ = re[degree-1]
	_ = im[degree-1]

	rf.alloc(degree + 1)

	rf.n = degree
	rf.nn = degree + 1

	// The working array holds decreasing powers.
	for i := 0; i <= degree; i++ {
		rf.p[degree-i] = coeffs[i]
	}

	// Roots at the origin.
	for rf.p[rf.n] == 0 {
		j := degree - rf.n
		re[j], im[j] = 0, 0
		rf.nn--
		rf.n--
	}

	xx := startAngle
	yy := -xx

	for attempt := 0; ; attempt++ {
		switch {
		case rf.n == 0:
			return degree, nil
		case rf.n == 1:
			re[degree-1] = -rf.p[1] / rf.p[0]
			im[degree-1] = 0

			return degree, nil
		case rf.n == 2:
			re[degree-2], im[degree-2], re[degree-1], im[degree-1] = SolveQuadratic(rf.p[0], rf.p[1], rf.p[2])

			return degree, nil
		}

		if attempt == degree {
			break
		}

		rf.scale()
		bnd := rf.lowerBound()
		rf.noShift()

		copy(rf.temp[:rf.n], rf.k[:rf.n])

		for cnt := 1; cnt <= maxShifts; cnt++ {
			// Rotate the shift point and try again.
			xxx := rotCos*xx - rotSin*yy
			yy = rotSin*xx + rotCos*yy
			xx = xxx

			rf.sr = bnd * xx
			rf.si = bnd * yy
			rf.u = -2 * rf.sr
			rf.v = bnd

			nz := rf.fixedShift(20 * cnt)
			if nz == 0 {
				copy(rf.k[:rf.n], rf.temp[:rf.n])
				continue
			}

			j := degree - rf.n
			re[j], im[j] = rf.szr, rf.szi
			if nz == 2 {
				re[j+1], im[j+1] = rf.lzr, rf.lzi
			}

			// Deflate.
			rf.nn -= nz
			rf.n = rf.nn - 1
			copy(rf.p[:rf.nn], rf.qp[:rf.nn])

			break
		}
	}

	return degree - rf.n, ErrFailedToConverge
}

func (rf *Finder) alloc(size int) {
	if cap(rf.p) < size {
		rf.p = make([]float64, size)
		rf.qp = make([]float64, size)
		rf.k = make([]float64, size)
		rf.qk = make([]float64, size)
		rf.svk = make([]float64, size)
		rf.temp = make([]float64, size)
		rf.pt = make([]float64, size)

		return
	}

	rf.p = rf.p[:size]
	rf.qp = rf.qp[:size]
	rf.k = rf.k[:size]
	rf.qk = rf.qk[:size]
	rf.svk = rf.svk[:size]
	rf.temp = rf.temp[:size]
	rf.pt = rf.pt[:size]
}

// scale multiplies the coefficients by a power of the base when their
// magnitudes are tiny or span a range that risks overflow.
func (rf *Finder) scale() {
	maxC := 0.0
	minC := infin

	for _, c := range rf.p[:rf.nn] {
		x := math.Abs(c)
		if x > maxC {
			maxC = x
		}

		if x != 0 && x < minC {
			minC = x
		}
	}

	sc := lo / minC

	var doScale bool
	if sc <= 1 {
		doScale = infin/sc < maxC
	} else {
		doScale = maxC < 10
	}

	if !doScale {
		return
	}

	if sc == 0 {
		sc = smalno
	}

	l := int(math.Log(sc)/math.Log(base) + 0.5)

	factor := math.Pow(base, float64(l))
	if factor == 1 {
		return
	}

	for i := range rf.p[:rf.nn] {
		rf.p[i] *= factor
	}
}

// lowerBound computes a lower bound on the moduli of the zeros using Newton
// iteration on the polynomial built from the coefficient moduli.
func (rf *Finder) lowerBound() float64 {
	n, nn := rf.n, rf.nn
	pt := rf.pt

	for i := range nn {
		pt[i] = math.Abs(rf.p[i])
	}

	pt[n] = -pt[n]

	x := math.Exp((math.Log(-pt[n]) - math.Log(pt[0])) / float64(n))
	if pt[n-1] != 0 {
		if xm := -pt[n] / pt[n-1]; xm < x {
			x = xm
		}
	}

	// Chop the interval (0, x) until ff <= 0.
	for {
		xm := x * 0.1

		ff := pt[0]
		for i := 1; i < nn; i++ {
			ff = ff*xm + pt[i]
		}

		if ff <= 0 {
			break
		}

		x = xm
	}

	dx := x
	for math.Abs(dx/x) > 0.005 {
		ff := pt[0]
		df := ff

		for i := 1; i < n; i++ {
			ff = ff*x + pt[i]
			df = df*x + ff
		}

		ff = ff*x + pt[n]
		dx = ff / df
		x -= dx
	}

	return x
}

// noShift runs five K-polynomial iterations without a shift, starting from
// the scaled derivative.
func (rf *Finder) noShift() {
	n := rf.n
	k, p := rf.k, rf.p

	for i := 1; i < n; i++ {
		k[i] = float64(n-i) * p[i] / float64(n)
	}

	k[0] = p[0]

	aa := p[n]
	bb := p[n-1]
	zerok := k[n-1] == 0

	for range 5 {
		cc := k[n-1]
		if zerok {
			for j := n - 1; j > 0; j-- {
				k[j] = k[j-1]
			}

			k[0] = 0
			zerok = k[n-1] == 0

			continue
		}

		t := -aa / cc
		for j := n - 1; j > 0; j-- {
			k[j] = t*k[j-1] + p[j]
		}

		k[0] = p[0]
		zerok = math.Abs(k[n-1]) <= math.Abs(bb)*etaN
	}
}

// fixedShift runs up to l2 fixed-shift iterations and, once the shift
// sequence settles, hands over to the variable-shift iterations. It returns
// the number of zeros found (0, 1 or 2).
//
//nolint:cyclop
func (rf *Finder) fixedShift(l2 int) int {
	n := rf.n

	rf.a, rf.b = quadraticSyntheticDivision(rf.nn, rf.u, rf.v, rf.p, rf.qp)
	typ := rf.calcSC()

	betav, betas := 0.25, 0.25
	oss := rf.sr
	ovv := rf.v

	var ots, otv, ui, vi float64

	for j := 1; j <= l2; j++ {
		rf.nextK(typ)
		typ = rf.calcSC()
		ui, vi = rf.newest(typ, ui, vi)

		vv := vi

		ss := 0.0
		if rf.k[n-1] != 0 {
			ss = -rf.p[n] / rf.k[n-1]
		}

		tv, ts := 1.0, 1.0

		if j != 1 && typ != 3 {
			if vv != 0 {
				tv = math.Abs((vv - ovv) / vv)
			}

			if ss != 0 {
				ts = math.Abs((ss - oss) / ss)
			}

			tvv := 1.0
			if tv < otv {
				tvv = tv * otv
			}

			tss := 1.0
			if ts < ots {
				tss = ts * ots
			}

			vpass := tvv < betav
			spass := tss < betas

			if spass || vpass {
				svu, svv := rf.u, rf.v
				copy(rf.svk[:n], rf.k[:n])

				s := ss
				vtry, stry := false, false
				quad := !spass || (vpass && tss >= tvv)

				for {
					if quad {
						if nz := rf.quadraticIteration(ui, vi); nz > 0 {
							return nz
						}

						vtry = true
						betav *= 0.25
					}

					if !quad || (!stry && spass) {
						if quad {
							copy(rf.k[:n], rf.svk[:n])
						}

						nz, s2, almostDouble := rf.realIteration(s)
						if nz > 0 {
							return nz
						}

						stry = true
						betas *= 0.25

						if almostDouble {
							// A cluster of zeros: try the quadratic
							// iteration from the real estimate.
							s = s2
							ui = -(s + s)
							vi = s * s
							quad = true

							continue
						}
					}

					rf.u, rf.v = svu, svv
					copy(rf.k[:n], rf.svk[:n])

					if vpass && !vtry {
						quad = true
						continue
					}

					break
				}

				rf.a, rf.b = quadraticSyntheticDivision(rf.nn, rf.u, rf.v, rf.p, rf.qp)
				typ = rf.calcSC()
			}
		}

		ovv, oss, otv, ots = vv, ss, tv, ts
	}

	return 0
}

// quadraticIteration runs the variable-shift iteration for a quadratic
// factor z^2 + uu*z + vv. It returns 2 on convergence, 0 otherwise.
//
//nolint:cyclop
func (rf *Finder) quadraticIteration(uu, vv float64) int {
	n := rf.n

	var ui, vi, omp, relstp float64

	tried := false
	j := 0
	rf.u, rf.v = uu, vv

	for {
		rf.szr, rf.szi, rf.lzr, rf.lzi = SolveQuadratic(1, rf.u, rf.v)

		// Bail out when the two zeros of the quadratic differ too much in
		// modulus; they are then better found separately.
		if math.Abs(math.Abs(rf.szr)-math.Abs(rf.lzr)) > 0.01*math.Abs(rf.lzr) {
			return 0
		}

		rf.a, rf.b = quadraticSyntheticDivision(rf.nn, rf.u, rf.v, rf.p, rf.qp)

		mp := math.Abs(rf.a-rf.szr*rf.b) + math.Abs(rf.szi*rf.b)

		// Rounding error bound on the evaluation.
		zm := math.Sqrt(math.Abs(rf.v))
		ee := 2 * math.Abs(rf.qp[0])
		t := -rf.szr * rf.b

		for i := 1; i < n; i++ {
			ee = ee*zm + math.Abs(rf.qp[i])
		}

		ee = ee*zm + math.Abs(rf.a+t)
		ee = (5*mre+4*are)*ee - (5*mre+2*are)*(math.Abs(rf.a+t)+math.Abs(rf.b)*zm) + 2*are*math.Abs(t)

		if mp <= 20*ee {
			return 2
		}

		j++
		if j > 20 {
			return 0
		}

		if j >= 2 && relstp <= 0.01 && mp >= omp && !tried {
			// Stalled: perturb u and v to break out of the cycle.
			if relstp < eta {
				relstp = eta
			}

			relstp = math.Sqrt(relstp)
			rf.u -= rf.u * relstp
			rf.v += rf.v * relstp

			rf.a, rf.b = quadraticSyntheticDivision(rf.nn, rf.u, rf.v, rf.p, rf.qp)
			for range 5 {
				rf.nextK(rf.calcSC())
			}

			tried = true
			j = 0
		}

		omp = mp

		rf.nextK(rf.calcSC())
		ui, vi = rf.newest(rf.calcSC(), ui, vi)

		if vi == 0 {
			return 0
		}

		relstp = math.Abs((vi - rf.v) / vi)
		rf.u, rf.v = ui, vi
	}
}

// realIteration runs the variable-shift iteration for a single real zero
// starting at sss. It returns 1 on convergence. almostDouble reports a
// cluster of zeros near s, in which case the quadratic iteration should be
// tried from the returned s.
func (rf *Finder) realIteration(sss float64) (nz int, s float64, almostDouble bool) {
	n, nn := rf.n, rf.nn
	p, qp, k, qk := rf.p, rf.qp, rf.k, rf.qk

	var t, omp float64

	s = sss

	for j := 1; ; j++ {
		pv := p[0]
		qp[0] = pv

		for i := 1; i < nn; i++ {
			pv = pv*s + p[i]
			qp[i] = pv
		}

		mp := math.Abs(pv)

		ms := math.Abs(s)
		ee := (mre / (are + mre)) * math.Abs(qp[0])

		for i := 1; i < nn; i++ {
			ee = ee*ms + math.Abs(qp[i])
		}

		if mp <= 20*((are+mre)*ee-mre*mp) {
			rf.szr, rf.szi = s, 0
			return 1, s, false
		}

		if j > 10 {
			return 0, sss, false
		}

		if j >= 2 && math.Abs(t) <= 0.001*math.Abs(s-t) && mp > omp {
			return 0, s, true
		}

		omp = mp

		kv := k[0]
		qk[0] = kv

		for i := 1; i < n; i++ {
			kv = kv*s + k[i]
			qk[i] = kv
		}

		if math.Abs(kv) <= math.Abs(k[n-1])*etaN {
			k[0] = 0
			for i := 1; i < n; i++ {
				k[i] = qk[i-1]
			}
		} else {
			t = -pv / kv
			k[0] = qp[0]

			for i := 1; i < n; i++ {
				k[i] = t*qk[i-1] + qp[i]
			}
		}

		kv = k[0]
		for i := 1; i < n; i++ {
			kv = kv*s + k[i]
		}

		t = 0
		if math.Abs(kv) > math.Abs(k[n-1])*etaN {
			t = -pv / kv
		}

		s += t
	}
}
