package analysis

import (
	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/poly"
)

// Stability of a filter derived from its pole moduli.
type Stability int

const (
	// Stable means every pole lies strictly inside the unit circle.
	Stable Stability = iota
	// Marginal means the outermost pole lies on the unit circle.
	Marginal
	// Unstable means at least one pole lies outside the unit circle.
	Unstable
	// Unknown means no verdict is available, as before any analysis.
	Unknown
)

// moduliPlaces is the rounding applied to pole moduli before they are
// compared with 1, so that poles at 0.99996 count as on the circle.
const moduliPlaces = 4

func (s Stability) String() string {
	switch s {
	case Stable:
		return "stable"
	case Marginal:
		return "marginally stable"
	case Unstable:
		return "unstable"
	default:
		return "unknown"
	}
}

// Classify rounds every pole modulus to four decimals and compares it with 1.
// No poles means stable.
func Classify(poles poly.Roots) Stability {
	state := Stable

	for _, m := range poles.Moduli() {
		switch r := core.RoundTo(m, moduliPlaces); {
		case r > 1:
			return Unstable
		case r == 1:
			state = Marginal
		}
	}

	return state
}
