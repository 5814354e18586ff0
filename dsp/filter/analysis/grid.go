package analysis

import "math"

// GridLine is a frequency marker on a logarithmic response plot.
type GridLine struct {
	Hz       float64
	Position float64 // fraction of the plot width in [0, 1]
}

// LogGrid returns the 1-2-...-9 decade markers starting at 10 Hz below
// Nyquist, positioned for the logarithmic mapping with the given base.
func LogGrid(sampleRate, base float64) []GridLine {
	nyquist := sampleRate / 2
	if nyquist <= 10 || base <= 1 {
		return nil
	}

	var lines []GridLine

	for decade := 10.0; decade < nyquist; decade *= 10 {
		for n := 1; n <= 9; n++ {
			hz := decade * float64(n)
			if hz >= nyquist {
				break
			}

			lines = append(lines, GridLine{Hz: hz, Position: LogPosition(hz, sampleRate, base)})
		}
	}

	return lines
}

// LogPosition maps a frequency to its horizontal position on a logarithmic
// plot; it inverts the logarithmic Omega mapping.
func LogPosition(hz, sampleRate, base float64) float64 {
	return math.Log(hz*(base-1)/(sampleRate/2)+1) / math.Log(base)
}
