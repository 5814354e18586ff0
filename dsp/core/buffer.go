package core

// EnsureLen returns buf resliced to n elements when its capacity allows,
// otherwise a freshly allocated slice. Contents are not preserved.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero clears buf in place.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
