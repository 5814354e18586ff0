package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/filter/analysis"
	"github.com/cwbudde/algo-iirviz/dsp/poly"
	"github.com/cwbudde/algo-iirviz/dsp/session"
	"github.com/cwbudde/algo-iirviz/internal/polyroot"
)

// report collects text output and keeps the first write error.
type report struct {
	w   io.Writer
	err error
}

func (r *report) printf(format string, args ...any) {
	if r.err != nil {
		return
	}

	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// equationView prints the difference equation and transfer function.
type equationView struct {
	out *report
}

func (v *equationView) Refresh(r *session.Result) {
	v.out.printf("%s\n", r.DifferenceEquation)
	v.out.printf("%s\n", r.TransferFunction)
}

// poleZeroView lists zeros, poles and the stability verdict.
type poleZeroView struct {
	out *report
}

func (v *poleZeroView) Refresh(r *session.Result) {
	v.out.printf("\nzeros (%d):\n", r.Roots.Zeros.Len())
	writeRoots(v.out, r.Roots.Zeros)
	v.out.printf("poles (%d):\n", r.Roots.Poles.Len())
	writeRoots(v.out, r.Roots.Poles)
	v.out.printf("filter is %s\n", r.Stability)
}

func writeRoots(out *report, roots poly.Roots) {
	moduli := roots.Moduli()

	for i := 0; i < roots.Len(); i++ {
		z := roots.At(i)

		if imag(z) != 0 && i+1 < roots.Len() && polyroot.IsConjugate(z, roots.At(i+1), polyroot.ConjugateTol) {
			out.printf("  %.6f ± %.6fj\t|z| = %.6f\n", real(z), math.Abs(imag(z)), moduli[i])
			i++

			continue
		}

		if imag(z) == 0 {
			out.printf("  %.6f\t|z| = %.6f\n", real(z), moduli[i])
		} else {
			out.printf("  %.6f%+.6fj\t|z| = %.6f\n", real(z), imag(z), moduli[i])
		}
	}
}

// responseView prints a summary and a sampled table of the magnitude and
// phase response. With fft set the linear curve is recomputed through the
// FFT evaluator.
type responseView struct {
	out  *report
	cfg  core.AnalysisConfig
	rows int
	fft  bool
}

func (v *responseView) Refresh(r *session.Result) {
	curve := r.Response

	if v.fft && curve.Mapping == analysis.Linear {
		fc, err := analysis.ResponseFFT(r.Coefficients, v.cfg)
		if err != nil {
			v.out.printf("fft response: %v\n", err)
		} else {
			curve = fc
		}
	}

	v.out.printf("\nresponse (%s, %d points):\n", curve.Mapping, len(curve.Magnitude))
	v.out.printf("  peak gain %.6f (%.2f dB), lowest %.2f dB", curve.HighestGain, curve.HighestDB, curve.LowestDB)

	switch {
	case curve.Flat():
		v.out.printf(", flat\n")
	case curve.GainAboveUnity:
		v.out.printf(", gain above unity\n")
	default:
		v.out.printf("\n")
	}

	if v.out.err != nil || v.rows <= 0 {
		return
	}

	tw := tabwriter.NewWriter(v.out.w, 0, 0, 2, ' ', 0)
	tab := &report{w: tw}

	tab.printf("  Hz\t|H|\tdB\tphase [deg]\tunwrapped [deg]\n")

	unwrapped := curve.UnwrappedPhase()

	for _, i := range tableRows(len(curve.Magnitude), v.rows) {
		tab.printf("  %.1f\t%.6f\t%.2f\t%.2f\t%.2f\n",
			curve.FrequencyHz(i, v.cfg.SampleRate),
			curve.Magnitude[i],
			curve.MagnitudeDB[i],
			curve.Phase[i]*180/math.Pi,
			unwrapped[i]*180/math.Pi,
		)
	}

	if curve.Mapping == analysis.Logarithmic {
		tab.printf("\n  grid Hz\tposition\tdB\t\t\n")

		for _, g := range analysis.LogGrid(v.cfg.SampleRate, curve.LogBase) {
			i := nearestSample(g.Position, len(curve.MagnitudeDB))
			tab.printf("  %.0f\t%.4f\t%.2f\t\t\n", g.Hz, g.Position, curve.MagnitudeDB[i])
		}
	}

	if tab.err == nil {
		tab.err = tw.Flush()
	}

	v.out.err = tab.err
}

// tableRows spreads rows indices evenly over points samples, always
// including the first and last.
func tableRows(points, rows int) []int {
	if points == 0 {
		return nil
	}

	if rows > points {
		rows = points
	}

	if rows == 1 {
		return []int{points - 1}
	}

	idx := make([]int, rows)
	for k := range idx {
		idx[k] = k * (points - 1) / (rows - 1)
	}

	return idx
}

// nearestSample maps a plot position in [0, 1] to the index of the closest
// response sample; sample k (1-based) sits at k/points.
func nearestSample(pos float64, points int) int {
	i := int(math.Round(pos*float64(points))) - 1

	return max(0, min(points-1, i))
}
