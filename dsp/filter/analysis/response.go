package analysis

import (
	"math"

	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Mapping selects how response samples are spread over [0, pi].
type Mapping int

const (
	// Linear spaces samples evenly: omega_k = pi*k/M.
	Linear Mapping = iota
	// Logarithmic warps the axis: omega_k = pi*(base^(k/M)-1)/(base-1).
	Logarithmic
)

func (m Mapping) String() string {
	if m == Logarithmic {
		return "log"
	}

	return "linear"
}

// ResponseCurve is the sampled frequency response of a filter. Sample k
// (1-based) of M lies at Omega[k-1]; the last sample is at Nyquist.
type ResponseCurve struct {
	Mapping Mapping
	LogBase float64

	Omega       []float64 // rad/sample in (0, pi]
	Magnitude   []float64 // |H|
	MagnitudeDB []float64 // 20 log10 |H|, clamped
	Phase       []float64 // arg H in (-pi, pi]

	HighestDB      float64
	LowestDB       float64
	HighestGain    float64 // peak linear magnitude
	GainAboveUnity bool    // some sample above 0 dB
}

// Omega returns the angular frequency of sample k (1..points).
func Omega(k, points int, mapping Mapping, base float64) float64 {
	x := float64(k) / float64(points)
	if mapping == Logarithmic {
		return math.Pi * (math.Pow(base, x) - 1) / (base - 1)
	}

	return math.Pi * x
}

// Evaluate returns H(e^{j omega}) = sum a_i e^{-j omega i} / (1 - sum_{j>=1} b_j e^{-j omega j}).
func Evaluate(c iir.Coefficients, omega float64) complex128 {
	var nr, ni float64

	for i, a := range c.A {
		if a == 0 {
			continue
		}

		if i == 0 {
			nr += a
			continue
		}

		s, co := math.Sincos(omega * float64(i))
		nr += a * co
		ni -= a * s
	}

	dr, di := 1.0, 0.0

	for j := 1; j < len(c.B); j++ {
		b := c.B[j]
		if b == 0 {
			continue
		}

		s, co := math.Sincos(omega * float64(j))
		dr -= b * co
		di += b * s
	}

	return complex(nr, ni) / complex(dr, di)
}

// Response samples the frequency response of c.
func Response(c iir.Coefficients, mapping Mapping, opts ...core.AnalysisOption) *ResponseCurve {
	return ResponseWithConfig(c, mapping, core.ApplyAnalysisOptions(opts...))
}

// ResponseWithConfig samples the response at cfg.ResponsePoints frequencies,
// clamping magnitudes to [cfg.FloorDB, cfg.CeilingDB].
func ResponseWithConfig(c iir.Coefficients, mapping Mapping, cfg core.AnalysisConfig) *ResponseCurve {
	m := cfg.ResponsePoints
	omega := make([]float64, m)
	h := make([]complex128, m)

	for k := 1; k <= m; k++ {
		w := Omega(k, m, mapping, cfg.LogBase)
		omega[k-1] = w
		h[k-1] = Evaluate(c, w)
	}

	return newCurve(h, omega, mapping, cfg)
}

func newCurve(h []complex128, omega []float64, mapping Mapping, cfg core.AnalysisConfig) *ResponseCurve {
	n := len(h)
	curve := &ResponseCurve{
		Mapping:     mapping,
		LogBase:     cfg.LogBase,
		Omega:       omega,
		Magnitude:   make([]float64, n),
		MagnitudeDB: make([]float64, n),
		Phase:       make([]float64, n),
		HighestDB:   cfg.FloorDB,
		LowestDB:    cfg.FloorDB,
	}

	if n == 0 {
		return curve
	}

	re := make([]float64, n)
	im := make([]float64, n)

	for i, v := range h {
		re[i], im[i] = real(v), imag(v)
	}

	vecmath.Magnitude(curve.Magnitude, re, im)

	for i, mag := range curve.Magnitude {
		if math.IsNaN(mag) {
			mag = 0
			curve.Magnitude[i] = 0
		}

		curve.MagnitudeDB[i] = core.Clamp(core.LinearToDB(mag), cfg.FloorDB, cfg.CeilingDB)
		if curve.MagnitudeDB[i] > 0 {
			curve.GainAboveUnity = true
		}

		if p := math.Atan2(im[i], re[i]); !math.IsNaN(p) {
			curve.Phase[i] = p
		}
	}

	resolvePhaseBoundary(curve.Phase, re, im)

	curve.HighestDB = floats.Max(curve.MagnitudeDB)
	curve.LowestDB = floats.Min(curve.MagnitudeDB)
	curve.HighestGain = floats.Max(curve.Magnitude)

	return curve
}

// resolvePhaseBoundary gives samples with a purely imaginary response a
// consistent sign. The first such sample takes the sign of its nearest
// regular neighbour and every later one reuses it, so the curve does not
// flip between +90 and -90 degrees.
func resolvePhaseBoundary(phase, re, im []float64) {
	sign := 0.0

	for i := range phase {
		if !onBoundary(re[i], im[i]) {
			continue
		}

		if sign == 0 {
			sign = neighbourSign(phase, re, im, i)
		}

		if sign != 0 {
			phase[i] = math.Copysign(math.Pi/2, sign)
		}
	}
}

func onBoundary(re, im float64) bool {
	return re == 0 && im != 0
}

func neighbourSign(phase, re, im []float64, i int) float64 {
	for d := 1; d < len(phase); d++ {
		for _, j := range [2]int{i - d, i + d} {
			if j < 0 || j >= len(phase) || onBoundary(re[j], im[j]) || phase[j] == 0 {
				continue
			}

			return math.Copysign(1, phase[j])
		}
	}

	return 0
}

// Flat reports whether the magnitude response has no dynamic range at four
// decimals of dB, as for a pure gain.
func (r *ResponseCurve) Flat() bool {
	return core.RoundTo(r.HighestDB, 4) == core.RoundTo(r.LowestDB, 4)
}

// FrequencyHz converts sample i to Hz at the given sample rate.
func (r *ResponseCurve) FrequencyHz(i int, sampleRate float64) float64 {
	return r.Omega[i] / math.Pi * sampleRate / 2
}

// PlotLayout maps dB values to a vertical plot coordinate measured from the
// top of a plot area.
type PlotLayout struct {
	ZeroLine     float64 // coordinate of 0 dB
	Scale        float64 // plot units per dB
	ShowZeroLine bool    // 0 dB lies inside the plotted range
}

// Y returns the plot coordinate of db.
func (l PlotLayout) Y(db float64) float64 {
	return l.ZeroLine - db*l.Scale
}

// Layout fits the curve into a plot of the given height. A flat curve has no
// range to fit: at 0 dB it sits in the middle, above 0 dB the 0 dB line is at
// the bottom, and below 0 dB it is at the top.
func (r *ResponseCurve) Layout(height float64) PlotLayout {
	high, low := r.HighestDB, r.LowestDB

	if r.Flat() {
		switch {
		case core.RoundTo(high, 4) == 0:
			return PlotLayout{ZeroLine: height / 2, Scale: 1, ShowZeroLine: true}
		case high > 0:
			return PlotLayout{ZeroLine: height, Scale: height / high}
		default:
			return PlotLayout{ZeroLine: 0, Scale: height / -low}
		}
	}

	scale := height / (high - low)

	return PlotLayout{
		ZeroLine:     height + low*scale,
		Scale:        scale,
		ShowZeroLine: low < 0 && high >= 0,
	}
}

// UnwrapPhase makes a phase sequence continuous: each step between
// neighbouring samples is reduced to (-pi, pi] and accumulated.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]

	for i := 1; i < len(phase); i++ {
		out[i] = out[i-1] + math.Remainder(phase[i]-phase[i-1], 2*math.Pi)
	}

	return out
}

// UnwrappedPhase returns the phase of the curve without 2*pi jumps.
func (r *ResponseCurve) UnwrappedPhase() []float64 {
	return UnwrapPhase(r.Phase)
}
