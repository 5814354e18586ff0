package analysis

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
)

var (
	// ErrTooFewPoints is returned when the FFT is shorter than the coefficient set.
	ErrTooFewPoints = errors.New("analysis: response points fewer than coefficients")
	// ErrFFTSize is returned when 2*points is not a power of two.
	ErrFFTSize = errors.New("analysis: fft length must be a power of two")
)

// LinearResponseFFT evaluates H at omega_k = pi*k/points, k = 1..points, with
// two forward FFTs of length 2*points over the zero-padded numerator and
// denominator. It matches the linear mapping of Response. Only power-of-two
// lengths are planned.
func LinearResponseFFT(c iir.Coefficients, points int) ([]complex128, error) {
	n := 2 * points
	if width := max(len(c.A), len(c.B)); points <= 0 || width > n {
		return nil, fmt.Errorf("%w: %d points, %d coefficients per side", ErrTooFewPoints, points, width)
	}

	if n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	num := make([]complex128, n)
	for i, a := range c.A {
		num[i] = complex(a, 0)
	}

	den := make([]complex128, n)
	den[0] = 1

	for j := 1; j < len(c.B); j++ {
		den[j] = complex(-c.B[j], 0)
	}

	numF := make([]complex128, n)
	if err := plan.Forward(numF, num); err != nil {
		return nil, fmt.Errorf("analysis: fft numerator: %w", err)
	}

	denF := make([]complex128, n)
	if err := plan.Forward(denF, den); err != nil {
		return nil, fmt.Errorf("analysis: fft denominator: %w", err)
	}

	h := make([]complex128, points)
	for k := 1; k <= points; k++ {
		h[k-1] = numF[k] / denF[k]
	}

	return h, nil
}

// ResponseFFT is the linear-mapped Response computed via LinearResponseFFT.
// Point counts without a power-of-two FFT length fall back to direct
// evaluation.
func ResponseFFT(c iir.Coefficients, cfg core.AnalysisConfig) (*ResponseCurve, error) {
	h, err := LinearResponseFFT(c, cfg.ResponsePoints)
	if errors.Is(err, ErrFFTSize) {
		return ResponseWithConfig(c, Linear, cfg), nil
	}

	if err != nil {
		return nil, err
	}

	omega := make([]float64, len(h))
	for k := range omega {
		omega[k] = Omega(k+1, len(h), Linear, cfg.LogBase)
	}

	return newCurve(h, omega, Linear, cfg), nil
}
