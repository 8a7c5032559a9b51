package spectrum

import (
	"cmp"
	"slices"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

// Spectrum is a read-only frequency-domain view of a buffer.
type Spectrum struct {
	hs         []complex128
	fs         []float64
	sampleRate float64
	full       bool
	n          int
	start      float64
}

// Compute transforms b into a spectrum. With full set it returns all N
// bins in FFT order; otherwise the one-sided N/2+1 bins of the real input.
// b is not modified.
func Compute(b *buffer.Buffer, full bool) (*Spectrum, error) {
	if b == nil || b.Len() == 0 {
		return nil, core.InvalidParameterf("spectrum requires a non-empty buffer")
	}

	n := b.Len()
	hs, err := forward(b.Samples())
	if err != nil {
		return nil, err
	}
	if !full {
		hs = hs[:n/2+1]
	}

	return &Spectrum{
		hs:         hs,
		fs:         binFreqs(len(hs), n, b.SampleRate(), full),
		sampleRate: b.SampleRate(),
		full:       full,
		n:          n,
		start:      b.Times()[0],
	}, nil
}

// binFreqs labels m bins of an n-point transform. Full spectra follow FFT
// order: non-negative frequencies first, then the negative half.
func binFreqs(m, n int, sampleRate float64, full bool) []float64 {
	df := sampleRate / float64(n)
	fs := make([]float64, m)
	for k := range fs {
		idx := k
		if full && k > (n-1)/2 {
			idx = k - n
		}
		fs[k] = float64(idx) * df
	}
	return fs
}

// Bins returns the complex bin values. The slice is shared.
func (s *Spectrum) Bins() []complex128 { return s.hs }

// Freqs returns the frequency label of each bin in Hz. The slice is shared.
func (s *Spectrum) Freqs() []float64 { return s.fs }

// SampleRate returns the source buffer's sample rate.
func (s *Spectrum) SampleRate() float64 { return s.sampleRate }

// Full reports whether the spectrum is two-sided.
func (s *Spectrum) Full() bool { return s.full }

// Len returns the bin count.
func (s *Spectrum) Len() int { return len(s.hs) }

// SourceLen returns the sample count of the transformed buffer.
func (s *Spectrum) SourceLen() int { return s.n }

// Resolution returns the bin spacing in Hz.
func (s *Spectrum) Resolution() float64 { return s.sampleRate / float64(s.n) }

// Amplitudes returns |hs[k]|.
func (s *Spectrum) Amplitudes() []float64 { return Magnitude(s.hs) }

// Power returns |hs[k]|^2.
func (s *Spectrum) Power() []float64 { return Power(s.hs) }

// Angles returns arg(hs[k]) in radians.
func (s *Spectrum) Angles() []float64 { return Phase(s.hs) }

// Inverse transforms the bins back into real samples.
func (s *Spectrum) Inverse() ([]float64, error) {
	hs := s.hs
	if !s.full {
		hs = hermitian(s.hs, s.n)
	}
	xs, err := inverse(hs)
	if err != nil {
		return nil, err
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = real(x)
	}
	return ys, nil
}

// Wave inverse-transforms the spectrum into a buffer starting at the source
// buffer's first time stamp.
func (s *Spectrum) Wave() (*buffer.Buffer, error) {
	ys, err := s.Inverse()
	if err != nil {
		return nil, err
	}
	return buffer.New(ys, buffer.TimeAxis(len(ys), s.start, s.sampleRate), s.sampleRate)
}

// hermitian rebuilds the n-point spectrum of a real signal from its
// one-sided half.
func hermitian(half []complex128, n int) []complex128 {
	out := make([]complex128, n)
	copy(out, half)
	for k := 1; k < len(half); k++ {
		if n-k >= len(half) {
			out[n-k] = complex(real(half[k]), -imag(half[k]))
		}
	}
	return out
}

// Peak is a local maximum of the amplitude spectrum.
type Peak struct {
	Bin       int
	Freq      float64
	Amplitude float64
}

// Peaks returns up to n local maxima over non-negative frequencies, ordered
// by decreasing amplitude. n <= 0 returns all of them.
func (s *Spectrum) Peaks(n int) []Peak {
	amps := s.Amplitudes()
	var peaks []Peak
	for k, a := range amps {
		if s.fs[k] < 0 || a == 0 {
			continue
		}
		if k > 0 && s.fs[k-1] >= 0 && amps[k-1] > a {
			continue
		}
		if k+1 < len(amps) && s.fs[k+1] >= 0 && amps[k+1] >= a {
			continue
		}
		peaks = append(peaks, Peak{Bin: k, Freq: s.fs[k], Amplitude: a})
	}
	slices.SortStableFunc(peaks, func(a, b Peak) int {
		return cmp.Compare(b.Amplitude, a.Amplitude)
	})
	if n > 0 && len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}
