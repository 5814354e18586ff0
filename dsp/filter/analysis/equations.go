package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-iirviz/dsp/filter/iir"
)

const diffEqPrefix = "y[n] = "

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeTerm appends a signed term. The first term carries its sign without
// spacing; later terms are joined with " + " or " - ". The magnitude is
// omitted when it is 1 and showUnit is false.
func writeTerm(sb *strings.Builder, first bool, v float64, showUnit bool, symbol string) {
	switch {
	case !first && v > 0:
		sb.WriteString(" + ")
	case !first:
		sb.WriteString(" - ")
	case v < 0:
		sb.WriteString("-")
	}

	if showUnit || math.Abs(v) != 1 {
		sb.WriteString(formatNumber(math.Abs(v)))
	}

	sb.WriteString(symbol)
}

// DifferenceEquation renders the time-domain recursion of c, for example
//
//	y[n] = x[n] + 0.5x[n - 1] - 0.25y[n - 2]
//
// Absent terms are skipped. With every coefficient zero it is "y[n] = 0".
func DifferenceEquation(c iir.Coefficients) string {
	var sb strings.Builder

	sb.WriteString(diffEqPrefix)

	first := true

	for i, a := range c.A {
		if a == 0 {
			continue
		}

		symbol := "x[n]"
		if i != 0 {
			symbol = "x[n - " + strconv.Itoa(i) + "]"
		}

		writeTerm(&sb, first, a, false, symbol)
		first = false
	}

	for j := 1; j < len(c.B); j++ {
		b := c.B[j]
		if b == 0 {
			continue
		}

		writeTerm(&sb, first, b, false, "y[n - "+strconv.Itoa(j)+"]")
		first = false
	}

	if first {
		sb.WriteString("0")
	}

	return sb.String()
}

// TransferText is the z-domain transfer function as text.
type TransferText struct {
	Numerator   string
	Denominator string
	// HasDenominator is false for pure feedforward filters, whose
	// denominator is the constant 1.
	HasDenominator bool
}

// String renders H(z) on a single line.
func (t TransferText) String() string {
	if !t.HasDenominator {
		return "H(z) = " + t.Numerator
	}

	return "H(z) = (" + t.Numerator + ") / (" + t.Denominator + ")"
}

// TransferFunction renders H(z) = sum a_i z^-i / (1 - sum b_j z^-j). The
// constant term always shows its number; the denominator shows the feedback
// coefficients with flipped signs.
func TransferFunction(c iir.Coefficients) TransferText {
	var num strings.Builder

	first := true

	for i, a := range c.A {
		if a == 0 {
			continue
		}

		symbol := ""
		if i != 0 {
			symbol = "z^-" + strconv.Itoa(i)
		}

		writeTerm(&num, first, a, i == 0, symbol)
		first = false
	}

	if first {
		num.WriteString("0")
	}

	var den strings.Builder

	den.WriteString("1")

	hasDen := false

	for j := 1; j < len(c.B); j++ {
		b := c.B[j]
		if b == 0 {
			continue
		}

		writeTerm(&den, false, -b, false, "z^-"+strconv.Itoa(j))
		hasDen = true
	}

	return TransferText{
		Numerator:      num.String(),
		Denominator:    den.String(),
		HasDenominator: hasDen,
	}
}
