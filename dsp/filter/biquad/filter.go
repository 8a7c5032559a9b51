package biquad

import (
	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

// Filter is a designed biquad. Its coefficients are fixed at construction
// and it keeps no state between calls, so one Filter may process any
// number of buffers. The zero History is [AliasedHistory].
type Filter struct {
	Coefficients
	History History

	kind       Kind
	q          float64
	cutoffHz   float64
	sampleRate float64
}

// New designs a filter of the given kind.
func New(kind Kind, q, cutoffHz, sampleRate float64, opts ...Option) (*Filter, error) {
	c, err := Design(kind, q, cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := config{history: AliasedHistory}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Filter{
		Coefficients: c,
		History:      cfg.history,
		kind:         kind,
		q:            q,
		cutoffHz:     cutoffHz,
		sampleRate:   sampleRate,
	}, nil
}

// NewLowPass designs a low-pass filter.
func NewLowPass(q, cutoffHz, sampleRate float64, opts ...Option) (*Filter, error) {
	return New(LowPass, q, cutoffHz, sampleRate, opts...)
}

// NewHighPass designs a high-pass filter.
func NewHighPass(q, cutoffHz, sampleRate float64, opts ...Option) (*Filter, error) {
	return New(HighPass, q, cutoffHz, sampleRate, opts...)
}

// Kind returns the filter response type.
func (f *Filter) Kind() Kind { return f.kind }

// Q returns the quality factor.
func (f *Filter) Q() float64 { return f.q }

// CutoffHz returns the cutoff frequency.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// SampleRate returns the sample rate the filter was designed for.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// ProcessInPlace filters buf in place. Zero-alloc.
func (f *Filter) ProcessInPlace(buf []float64) {
	f.process(buf, buf)
}

// ProcessTo filters src into dst, leaving src untouched. Both slices must
// have the same length.
func (f *Filter) ProcessTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return core.InvalidParameterf("biquad dst/src length mismatch: %d != %d", len(dst), len(src))
	}
	f.process(dst, src)
	return nil
}

// Transform filters the buffer's samples in place. The buffer must share
// the sample rate the filter was designed for.
func (f *Filter) Transform(b *buffer.Buffer) error {
	if b.SampleRate() != f.sampleRate {
		return core.InvalidParameterf("biquad designed for %f Hz, buffer is %f Hz", f.sampleRate, b.SampleRate())
	}
	f.ProcessInPlace(b.Samples())
	return nil
}

// Effective returns the coefficients of the recursion actually run. With
// AliasedHistory the feed-forward taps fold into the feedback ones:
// y[i] = A0*x[i] - (B1-A1)*y[i-1] - (B2-A2)*y[i-2].
func (f *Filter) Effective() Coefficients {
	if f.History == DryHistory {
		return f.Coefficients
	}
	return Coefficients{A0: f.A0, B1: f.B1 - f.A1, B2: f.B2 - f.A2}
}

// process runs the recursion as a scan in increasing index order. Dry
// history is carried in locals, so dst may alias src in either mode.
func (f *Filter) process(dst, src []float64) {
	n := len(src)
	copy(dst[:min(n, 2)], src[:min(n, 2)])
	if n < 3 {
		return
	}

	a0, a1, a2 := f.A0, f.A1, f.A2
	b1, b2 := f.B1, f.B2
	y1, y2 := dst[1], dst[0]

	if f.History != DryHistory {
		for i := 2; i < n; i++ {
			y := a0*src[i] + a1*y1 + a2*y2 - b1*y1 - b2*y2
			dst[i] = y
			y2, y1 = y1, y
		}
		return
	}

	x1, x2 := src[1], src[0]
	for i := 2; i < n; i++ {
		x := src[i]
		y := a0*x + a1*x1 + a2*x2 - b1*y1 - b2*y2
		dst[i] = y
		x2, x1 = x1, x
		y2, y1 = y1, y
	}
}
