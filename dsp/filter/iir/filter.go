package iir

import "github.com/cwbudde/algo-iirviz/dsp/core"

// Filter is the runtime state of a direct-form IIR filter: circular input and
// output histories of length L sharing one write position.
type Filter struct {
	a, b    []float64
	inputs  []float64
	outputs []float64
	pos     int
	out     float64
}

// NewFilter creates a filter with a copy of c and cleared history.
func NewFilter(c Coefficients) *Filter {
	f := &Filter{}
	f.SetCoefficients(c)

	return f
}

// SetCoefficients copies c into the filter. When the length per side is
// unchanged the history is kept and nothing is allocated; otherwise the
// storage is resized and the history cleared.
func (f *Filter) SetCoefficients(c Coefficients) {
	n := len(c.A)
	if n == len(f.a) && len(c.B) == n {
		copy(f.a, c.A)
		copy(f.b, c.B)

		return
	}

	f.a = core.EnsureLen(f.a, n)
	f.b = core.EnsureLen(f.b, n)
	f.inputs = core.EnsureLen(f.inputs, n)
	f.outputs = core.EnsureLen(f.outputs, n)
	copy(f.a, c.A)
	copy(f.b, c.B[:min(n, len(c.B))])
	core.Zero(f.b[min(n, len(c.B)):])
	f.Reset()
}

// Step advances the filter by one sample and returns the output hard-limited
// to [-1, 1]. The unclamped value stays in the history and is available from
// Output.
//
//	y[n] = sum_{i=0}^{L-1} a_i x[n-i] + sum_{j=1}^{L-1} b_j y[n-j]
func (f *Filter) Step(x float64) float64 {
	n := len(f.a)
	if n == 0 {
		return 0
	}

	f.inputs[f.pos] = x

	var y float64

	p := f.pos
	for i := range n {
		if c := f.a[i]; c != 0 {
			y += c * f.inputs[p]
		}

		p--
		if p < 0 {
			p = n - 1
		}
	}

	p = f.pos
	for j := 1; j < n; j++ {
		p--
		if p < 0 {
			p = n - 1
		}

		if c := f.b[j]; c != 0 {
			y += c * f.outputs[p]
		}
	}

	f.out = y
	f.outputs[f.pos] = core.FlushDenormals(y)

	f.pos++
	if f.pos >= n {
		f.pos = 0
	}

	return core.Limit(y)
}

// ProcessBlock filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlock(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.Step(x)
	}
}

// Output returns the unclamped output of the last Step.
func (f *Filter) Output() float64 {
	return f.out
}

// Reset clears both histories.
func (f *Filter) Reset() {
	core.Zero(f.inputs)
	core.Zero(f.outputs)
	f.pos = 0
	f.out = 0
}

// Len returns the number of coefficients per side.
func (f *Filter) Len() int {
	return len(f.a)
}
