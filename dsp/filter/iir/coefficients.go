package iir

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidOrder is returned for odd or non-positive orders.
	ErrInvalidOrder = errors.New("iir: order must be a positive even number")
	// ErrUnknownCoefficient is returned for names other than a<i> or b<i>
	// within the configured order.
	ErrUnknownCoefficient = errors.New("iir: unknown coefficient name")
	// ErrOrderMismatch is returned when coefficient sets of different
	// orders are combined.
	ErrOrderMismatch = errors.New("iir: coefficient order mismatch")
	// ErrNonFinite is returned for NaN or infinite coefficients.
	ErrNonFinite = errors.New("iir: coefficient is not finite")
)

// Side selects one of the two coefficient arrays.
type Side int

const (
	// Feedforward is the x side, named a<i>.
	Feedforward Side = iota
	// Feedback is the y side, named b<i>.
	Feedback
)

func (s Side) String() string {
	if s == Feedback {
		return "b"
	}

	return "a"
}

// Coefficients is a coefficient snapshot. Both slices have the same length,
// half the filter order. A value of exactly 0 marks an absent term.
type Coefficients struct {
	A []float64 // feedforward, a_i multiplies x[n-i]
	B []float64 // feedback, b_j multiplies y[n-j]; B[0] is unused
}

// NewCoefficients returns the identity filter of the given order: a0 = 1 and
// every other coefficient 0.
func NewCoefficients(order int) (Coefficients, error) {
	if order < 2 || order%2 != 0 {
		return Coefficients{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	c := Coefficients{
		A: make([]float64, order/2),
		B: make([]float64, order/2),
	}
	c.A[0] = 1

	return c, nil
}

// Order returns the total number of coefficient slots.
func (c Coefficients) Order() int {
	return len(c.A) + len(c.B)
}

// Len returns the number of coefficients per side.
func (c Coefficients) Len() int {
	return len(c.A)
}

// Clone returns an independent copy.
func (c Coefficients) Clone() Coefficients {
	out := Coefficients{
		A: make([]float64, len(c.A)),
		B: make([]float64, len(c.B)),
	}
	copy(out.A, c.A)
	copy(out.B, c.B)

	return out
}

// Validate checks the structural invariants of c.
func (c Coefficients) Validate() error {
	if len(c.A) == 0 || len(c.A) != len(c.B) {
		return fmt.Errorf("%w: %d feedforward vs %d feedback", ErrOrderMismatch, len(c.A), len(c.B))
	}

	for i := range c.A {
		if math.IsNaN(c.A[i]) || math.IsInf(c.A[i], 0) {
			return fmt.Errorf("%w: a%d=%v", ErrNonFinite, i, c.A[i])
		}

		if math.IsNaN(c.B[i]) || math.IsInf(c.B[i], 0) {
			return fmt.Errorf("%w: b%d=%v", ErrNonFinite, i, c.B[i])
		}
	}

	return nil
}

// Get returns the coefficient of the given side and lag.
func (c Coefficients) Get(side Side, index int) float64 {
	s := c.side(side)
	if index < 0 || index >= len(s) {
		return 0
	}

	return s[index]
}

// Set stores v at the given side and lag. Non-finite values are stored as 0.
func (c Coefficients) Set(side Side, index int, v float64) error {
	s := c.side(side)
	if index < 0 || index >= len(s) {
		return fmt.Errorf("%w: %s%d", ErrUnknownCoefficient, side, index)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	s[index] = v

	return nil
}

// SetByName parses text and stores it under a coefficient name such as "a0"
// or "b3". Malformed text stores 0; unknown names are an error.
func (c Coefficients) SetByName(name, text string) error {
	side, index, err := ParseName(name)
	if err != nil {
		return err
	}

	return c.Set(side, index, ParseValue(text))
}

// HighestFeedforwardLag returns the largest i with a_i != 0, or 0.
func (c Coefficients) HighestFeedforwardLag() int {
	for i := len(c.A) - 1; i > 0; i-- {
		if c.A[i] != 0 {
			return i
		}
	}

	return 0
}

// HighestFeedbackLag returns the largest j >= 1 with b_j != 0, or 0.
func (c Coefficients) HighestFeedbackLag() int {
	for j := len(c.B) - 1; j > 0; j-- {
		if c.B[j] != 0 {
			return j
		}
	}

	return 0
}

func (c Coefficients) side(s Side) []float64 {
	if s == Feedback {
		return c.B
	}

	return c.A
}

// ParseName splits a coefficient name into side and lag. Names are a
// lowercase or uppercase 'a' or 'b' followed by a decimal index.
func ParseName(name string) (Side, int, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCoefficient, name)
	}

	var side Side

	switch name[0] {
	case 'a', 'A':
		side = Feedforward
	case 'b', 'B':
		side = Feedback
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCoefficient, name)
	}

	index, err := strconv.Atoi(name[1:])
	if err != nil || index < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCoefficient, name)
	}

	return side, index, nil
}

// ParseValue converts user text to a coefficient. Empty, malformed and
// non-finite input all yield 0.
func ParseValue(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
