// Package spectrum computes the discrete Fourier transform of a rendered
// buffer and exposes read-only views of the result.
//
// [Compute] produces either the two-sided transform (N bins, labels in
// [-rate/2, rate/2) in FFT order) or the one-sided real-input transform
// (N/2+1 bins, non-negative labels). No window is applied. Power-of-two
// lengths run on algo-fft plans; other lengths fall back to go-dsp.
package spectrum
