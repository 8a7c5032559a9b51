// Package wavfile encodes rendered buffers as 16-bit mono PCM WAV files.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-pmsynth/dsp/quantize"
	"github.com/sirupsen/logrus"
	"github.com/youpy/go-wav"
)

const (
	bitsPerSample = 16
	numChannels   = 1
)

// ErrClosed is returned by operations on a closed Writer.
var ErrClosed = errors.New("wavfile: writer closed")

type config struct {
	logger logrus.FieldLogger
}

// Option configures a Writer.
type Option func(*config) error

// WithLogger routes range warnings to logger instead of the logrus
// standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("wavfile: logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// Writer collects quantized frames and emits the WAV stream on Close. The
// RIFF header carries the frame count, so nothing is written before then.
type Writer struct {
	dst        io.Writer
	sampleRate float64
	bound      float64
	frames     []int16
	log        logrus.FieldLogger
	closed     bool
}

// NewWriter returns a Writer that encodes to dst at sampleRate.
func NewWriter(dst io.Writer, sampleRate float64, opts ...Option) (*Writer, error) {
	if dst == nil {
		return nil, core.InvalidParameterf("wavfile destination must not be nil")
	}
	if err := core.ValidateSampleRate("wavfile", sampleRate); err != nil {
		return nil, err
	}
	if sampleRate > math.MaxUint32 {
		return nil, core.InvalidParameterf("wavfile sample rate out of range: %f", sampleRate)
	}

	cfg := config{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	bound, err := quantize.Bound(bitsPerSample)
	if err != nil {
		return nil, err
	}

	return &Writer{
		dst:        dst,
		sampleRate: sampleRate,
		bound:      bound,
		log:        cfg.logger,
	}, nil
}

// Write quantizes b and appends it. Input outside [-1, 1] is renormalized
// and logged at warning level.
func (w *Writer) Write(b *buffer.Buffer) error {
	if w.closed {
		return ErrClosed
	}
	if b == nil {
		return core.InvalidParameterf("wavfile buffer must not be nil")
	}
	if b.SampleRate() != w.sampleRate {
		return core.InvalidParameterf("wavfile buffer sample rate %f does not match writer rate %f",
			b.SampleRate(), w.sampleRate)
	}

	res, err := quantize.Quantize[int16](b.Samples(), w.bound)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}
	if res.Warning != nil {
		w.log.WithFields(logrus.Fields{
			"peak":    res.Warning.Peak,
			"samples": len(res.Samples),
		}).Warn("Input exceeds full scale, normalized before encoding")
	}

	w.frames = append(w.frames, res.Samples...)
	return nil
}

// Frames returns the number of frames appended so far.
func (w *Writer) Frames() int {
	return len(w.frames)
}

// Close appends silenceS seconds of zero frames and encodes the stream.
func (w *Writer) Close(silenceS float64) error {
	if w.closed {
		return ErrClosed
	}
	if math.IsNaN(silenceS) || math.IsInf(silenceS, 0) || silenceS < 0 {
		return core.InvalidParameterf("wavfile silence must be >= 0 and finite: %f", silenceS)
	}
	w.closed = true

	pad := int(math.RoundToEven(silenceS * w.sampleRate))
	total := len(w.frames) + pad
	if total > math.MaxUint32/(numChannels*bitsPerSample/8) {
		return core.InvalidParameterf("wavfile stream too long: %d frames", total)
	}

	samples := make([]wav.Sample, total)
	for i, v := range w.frames {
		samples[i].Values[0] = int(v)
	}

	enc := wav.NewWriter(w.dst, uint32(total), numChannels, uint32(w.sampleRate), bitsPerSample)
	if err := enc.WriteSamples(samples); err != nil {
		return fmt.Errorf("wavfile: write samples: %w", err)
	}

	w.log.WithFields(logrus.Fields{
		"frames":      total,
		"silence":     pad,
		"sample_rate": w.sampleRate,
	}).Debug("WAV stream written")
	return nil
}

// Encode writes b followed by silenceS seconds of silence to dst.
func Encode(dst io.Writer, b *buffer.Buffer, silenceS float64, opts ...Option) error {
	if b == nil {
		return core.InvalidParameterf("wavfile buffer must not be nil")
	}
	w, err := NewWriter(dst, b.SampleRate(), opts...)
	if err != nil {
		return err
	}
	if err := w.Write(b); err != nil {
		return err
	}
	return w.Close(silenceS)
}

// WriteFile encodes b into the file at path, replacing any existing file.
func WriteFile(path string, b *buffer.Buffer, silenceS float64, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("wavfile: %w", cerr)
		}
	}()
	return Encode(f, b, silenceS, opts...)
}
