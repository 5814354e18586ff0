// Package session wires coefficient edits to the analysis pipeline and
// publishes the results to views and to the audio path.
//
// A Session is driven from one control goroutine. The audio goroutine only
// calls Snapshot, which is lock-free.
package session

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/filter/analysis"
	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
)

// ErrNotCalculated is returned by accessors before the first successful
// Calculate.
var ErrNotCalculated = errors.New("session: no results yet")

// Result is one complete, consistent analysis of a coefficient snapshot.
type Result struct {
	Coefficients       iir.Coefficients
	Roots              analysis.RootResult
	Stability          analysis.Stability
	Response           *analysis.ResponseCurve
	DifferenceEquation string
	TransferFunction   analysis.TransferText
}

// Snapshot is the immutable state handed to the audio path.
type Snapshot struct {
	Coefficients iir.Coefficients
	// Stable is false whenever playback must be suppressed: unstable or
	// marginal poles, or a failed analysis.
	Stable bool
	// HighestGain is the peak linear magnitude of the response.
	HighestGain float64
	// Generation increases with every published snapshot.
	Generation uint64
}

// OutputScaling returns the gain that normalises the response peak to 1,
// or 1 when the peak is unusable.
func (s *Snapshot) OutputScaling() float64 {
	g := s.HighestGain
	if g <= 0 || math.IsInf(g, 0) || math.IsNaN(g) {
		return 1
	}

	return 1 / g
}

// View consumes analysis results.
type View interface {
	Refresh(r *Result)
}

// ViewFunc adapts a function to View.
type ViewFunc func(r *Result)

// Refresh calls f(r).
func (f ViewFunc) Refresh(r *Result) { f(r) }

// Session holds the staged coefficients and the last successful result.
type Session struct {
	cfg     core.AnalysisConfig
	mapping analysis.Mapping
	coeffs  iir.Coefficients
	result  *Result
	stale   bool // last Calculate failed
	views   []View

	snap atomic.Pointer[Snapshot]
	gen  uint64

	findRoots func(iir.Coefficients) (analysis.RootResult, error)
}

// New creates a session with the identity filter of the configured order.
// Nothing is computed until Calculate.
func New(opts ...core.AnalysisOption) (*Session, error) {
	cfg := core.ApplyAnalysisOptions(opts...)

	c, err := iir.NewCoefficients(cfg.Order)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{cfg: cfg, coeffs: c, findRoots: analysis.FindRoots}
	s.publish(&Snapshot{Coefficients: c.Clone()})

	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() core.AnalysisConfig {
	return s.cfg
}

// Coefficients returns a copy of the staged coefficients.
func (s *Session) Coefficients() iir.Coefficients {
	return s.coeffs.Clone()
}

// SetCoefficients stages a full coefficient set. Its order must match the
// session order.
func (s *Session) SetCoefficients(c iir.Coefficients) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if c.Order() != s.cfg.Order {
		return fmt.Errorf("session: %w: got %d, want %d", iir.ErrOrderMismatch, c.Order(), s.cfg.Order)
	}

	s.coeffs = c.Clone()

	return nil
}

// SetCoefficientText stages one edit such as ("b2", "-0.25"). Malformed
// text stores 0; unknown names return an error and leave the set unchanged.
func (s *Session) SetCoefficientText(name, text string) error {
	if err := s.coeffs.SetByName(name, text); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}

// SetMapping selects the frequency mapping used by the next Calculate.
func (s *Session) SetMapping(m analysis.Mapping) {
	s.mapping = m
}

// Mapping returns the current frequency mapping.
func (s *Session) Mapping() analysis.Mapping {
	return s.mapping
}

// AddView registers a consumer notified after every successful Calculate.
func (s *Session) AddView(v View) {
	s.views = append(s.views, v)
}

// Calculate analyses the staged coefficients. On success the new result
// replaces the old one, a snapshot is published and the views are refreshed.
// On a root-finding failure the previous result stays in place and playback
// is suppressed until the next success. Calling it twice without edits
// yields identical results.
func (s *Session) Calculate() error {
	c := s.coeffs.Clone()

	roots, err := s.findRoots(c)
	if err != nil {
		s.stale = true
		s.publish(&Snapshot{Coefficients: c})

		return fmt.Errorf("session: %w", err)
	}

	curve := analysis.ResponseWithConfig(c, s.mapping, s.cfg)

	r := &Result{
		Coefficients:       c,
		Roots:              roots,
		Stability:          roots.Stability(),
		Response:           curve,
		DifferenceEquation: analysis.DifferenceEquation(c),
		TransferFunction:   analysis.TransferFunction(c),
	}

	s.result = r
	s.stale = false
	s.publish(&Snapshot{
		Coefficients: c,
		Stable:       r.Stability == analysis.Stable,
		HighestGain:  curve.HighestGain,
	})

	for _, v := range s.views {
		v.Refresh(r)
	}

	return nil
}

func (s *Session) publish(snap *Snapshot) {
	s.gen++
	snap.Generation = s.gen
	s.snap.Store(snap)
}

// Snapshot returns the latest published snapshot. It is safe to call from
// any goroutine.
func (s *Session) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Result returns the last successful result, or nil.
func (s *Session) Result() *Result {
	return s.result
}

// Roots returns the zeros and poles of the last successful result.
func (s *Session) Roots() (analysis.RootResult, error) {
	if s.result == nil {
		return analysis.RootResult{}, ErrNotCalculated
	}

	return s.result.Roots, nil
}

// Stability returns the verdict of the current coefficients. It is Unknown
// before the first Calculate and after a failed one, so that it reports
// Stable exactly when IsStable is true. Result still holds the previous
// verdict after a failure.
func (s *Session) Stability() analysis.Stability {
	if s.result == nil || s.stale {
		return analysis.Unknown
	}

	return s.result.Stability
}

// IsStable reports whether audio may be played through the current filter.
func (s *Session) IsStable() bool {
	return s.Snapshot().Stable
}

// ResponseCurve returns the magnitude response of the last successful result.
func (s *Session) ResponseCurve() *analysis.ResponseCurve {
	if s.result == nil {
		return nil
	}

	return s.result.Response
}

// PhaseCurve returns the phase samples of the last successful result.
func (s *Session) PhaseCurve() []float64 {
	if s.result == nil {
		return nil
	}

	return s.result.Response.Phase
}

// HighestGainMagnitude returns the peak linear magnitude of the response.
func (s *Session) HighestGainMagnitude() float64 {
	if s.result == nil {
		return 0
	}

	return s.result.Response.HighestGain
}
