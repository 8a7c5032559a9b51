// Package biquad provides resonant second-order (biquad) low-pass and
// high-pass IIR filters.
//
// [Design] derives the five [Coefficients] from Q, cutoff frequency and
// sample rate. A [Filter] applies the difference equation
//
//	y[i] = A0*x[i] + A1*x[i-1] + A2*x[i-2] - B1*y[i-1] - B2*y[i-2]
//
// to a whole buffer, starting at index 2. The first two samples pass
// through unchanged and seed the recursion. The recursion is evaluated in
// strictly increasing index order; each output depends on the two previous
// outputs.
//
// By default the x[i-1] and x[i-2] terms read the same storage the outputs
// are written to, so they see already-filtered samples ([AliasedHistory]).
// [DryHistory] keeps the unfiltered input for those terms. [Filter.Effective]
// reports the coefficients of whichever recursion runs; the embedded
// [Coefficients] always hold the design.
package biquad
