// Package player runs the IIR filter on the audio path. It reads the latest
// session snapshot once per block, gates playback on stability, normalises
// the output by the response peak and hard-limits it.
//
// Player methods are meant for a single audio goroutine; SetEnabled and
// SetAutoScale may be called from any goroutine.
package player

import (
	"sync/atomic"

	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
	"github.com/cwbudde/algo-iirviz/dsp/session"
)

// Source publishes filter snapshots. *session.Session implements it.
type Source interface {
	Snapshot() *session.Snapshot
}

// Excitation produces the signal fed into the filter.
type Excitation interface {
	Next() float64
}

// ExcitationFunc adapts a function to Excitation.
type ExcitationFunc func() float64

// Next returns f().
func (f ExcitationFunc) Next() float64 { return f() }

// Option configures a Player.
type Option func(*Player)

// WithAutoScale sets whether the output is normalised by the response peak.
// It is on by default.
func WithAutoScale(on bool) Option {
	return func(p *Player) { p.autoScale.Store(on) }
}

// WithEnabled sets the initial playback switch. It is on by default.
func WithEnabled(on bool) Option {
	return func(p *Player) { p.enabled.Store(on) }
}

// Player filters an excitation signal with the published coefficients.
type Player struct {
	src    Source
	exc    Excitation
	filter iir.Filter

	enabled   atomic.Bool
	autoScale atomic.Bool

	gen     uint64
	stable  bool
	scaling float64
}

// New creates a player reading snapshots from src and driving the filter with exc.
func New(src Source, exc Excitation, opts ...Option) *Player {
	p := &Player{src: src, exc: exc, scaling: 1}
	p.enabled.Store(true)
	p.autoScale.Store(true)

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.sync()

	return p
}

// SetEnabled switches playback on or off. The filter keeps running.
func (p *Player) SetEnabled(on bool) {
	p.enabled.Store(on)
}

// SetAutoScale switches peak normalisation on or off.
func (p *Player) SetAutoScale(on bool) {
	p.autoScale.Store(on)
}

// sync adopts a newer snapshot. The history is cleared on the transition
// into a stable state, discarding whatever an unstable filter left behind.
func (p *Player) sync() {
	snap := p.src.Snapshot()
	if snap == nil || snap.Generation == p.gen {
		return
	}

	p.gen = snap.Generation
	p.filter.SetCoefficients(snap.Coefficients)

	if snap.Stable && !p.stable {
		p.filter.Reset()
	}

	p.stable = snap.Stable
	p.scaling = snap.OutputScaling()
}

func (p *Player) gain() (float64, bool) {
	if !p.stable || !p.enabled.Load() {
		return 0, false
	}

	if p.autoScale.Load() {
		return p.scaling, true
	}

	return 1, true
}

// Step feeds one excitation sample through the filter and returns the
// output sample: zero while playback is suppressed, otherwise the scaled
// output limited to [-1, 1].
func (p *Player) Step(x float64) float64 {
	p.sync()
	p.filter.Step(x)

	g, play := p.gain()
	if !play {
		return 0
	}

	return core.Limit(p.filter.Output() * g)
}

// Process fills dst with filtered excitation. It performs no allocation
// while the filter order is unchanged.
func (p *Player) Process(dst []float64) {
	p.sync()
	g, play := p.gain()

	for i := range dst {
		p.filter.Step(p.exc.Next())

		if !play {
			dst[i] = 0
			continue
		}

		dst[i] = core.Limit(p.filter.Output() * g)
	}
}

// ProcessFloat32 is Process for float32 audio buffers.
func (p *Player) ProcessFloat32(dst []float32) {
	p.sync()
	g, play := p.gain()

	for i := range dst {
		p.filter.Step(p.exc.Next())

		if !play {
			dst[i] = 0
			continue
		}

		dst[i] = float32(core.Limit(p.filter.Output() * g))
	}
}
