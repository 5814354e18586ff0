// Package iir provides the coefficient set and the direct-form runtime of a
// single fixed-order IIR filter.
//
// The filter computes
//
//	y[n] = sum_{i=0}^{L-1} a_i x[n-i] + sum_{j=1}^{L-1} b_j y[n-j]
//
// where a are the feedforward and b the feedback coefficients and L is half
// the configured order. Note the sign convention: feedback terms are added.
// b_0 has no effect; the output coefficient is implicitly 1.
package iir
