// Package analysis derives the views of an IIR coefficient set: zero and
// pole polynomials and their roots, stability, magnitude and phase response
// curves, and the textual difference equation and transfer function.
//
// All functions are pure over a coefficient snapshot and may run on any
// goroutine.
package analysis
