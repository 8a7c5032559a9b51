package buffer

import (
	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Buffer is a sequence of real samples with parallel time stamps and a
// sample rate. len(Samples()) == len(Times()) always holds.
type Buffer struct {
	samples    []float64
	times      []float64
	sampleRate float64
}

// Transformer is implemented by filters and effects that rewrite a buffer's
// samples in place. A failed Transform leaves the buffer undefined.
type Transformer interface {
	Transform(b *Buffer) error
}

// New wraps samples and times without copying. Times must be strictly
// increasing and match samples in length.
func New(samples, times []float64, sampleRate float64) (*Buffer, error) {
	if err := core.ValidateSampleRate("buffer", sampleRate); err != nil {
		return nil, err
	}
	if len(samples) != len(times) {
		return nil, core.InvalidParameterf("buffer samples/times length mismatch: %d != %d", len(samples), len(times))
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return nil, core.InvalidParameterf("buffer times must be strictly increasing at index %d", i)
		}
	}
	return &Buffer{samples: samples, times: times, sampleRate: sampleRate}, nil
}

// FromSamples wraps samples without copying and builds the default time axis
// ts[i] = i/sampleRate.
func FromSamples(samples []float64, sampleRate float64) (*Buffer, error) {
	if err := core.ValidateSampleRate("buffer", sampleRate); err != nil {
		return nil, err
	}
	return &Buffer{
		samples:    samples,
		times:      TimeAxis(len(samples), 0, sampleRate),
		sampleRate: sampleRate,
	}, nil
}

// TimeAxis returns n time stamps start + i/sampleRate.
func TimeAxis(n int, start, sampleRate float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = start + float64(i)/sampleRate
	}
	return ts
}

// Samples returns the underlying sample slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Times returns the underlying time stamps in seconds.
func (b *Buffer) Times() []float64 {
	return b.times
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() float64 {
	return b.sampleRate
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Duration returns the covered time span in seconds, Len()/SampleRate().
func (b *Buffer) Duration() float64 {
	return float64(len(b.samples)) / b.sampleRate
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	ts := make([]float64, len(b.times))
	copy(ts, b.times)
	return &Buffer{samples: s, times: ts, sampleRate: b.sampleRate}
}

// Scale multiplies every sample by factor in place.
func (b *Buffer) Scale(factor float64) {
	if len(b.samples) == 0 {
		return
	}
	vecmath.ScaleBlock(b.samples, b.samples, factor)
}

// Normalize rescales the samples in place so the peak magnitude equals amp.
// An all-zero buffer returns an error wrapping core.ErrDegenerateBuffer and
// is left untouched.
func (b *Buffer) Normalize(amp float64) error {
	peak := Peak(b.samples)
	if peak == 0 {
		return degenerate(len(b.samples))
	}
	vecmath.ScaleBlock(b.samples, b.samples, amp/peak)
	return nil
}

// Unbias removes the mean from the samples in place.
func (b *Buffer) Unbias() {
	m := Mean(b.samples)
	for i := range b.samples {
		b.samples[i] -= m
	}
}

// Apply runs t over the buffer.
func (b *Buffer) Apply(t Transformer) error {
	return t.Transform(b)
}
