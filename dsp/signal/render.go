package signal

import (
	"math"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

// Render evaluates s over round(durationS*sampleRate) time stamps
// startS + i/sampleRate and returns the resulting buffer. The sample count
// rounds half to even. A start so large that float64 cannot tell adjacent
// stamps apart is rejected.
func Render(s Signal, durationS, startS, sampleRate float64) (*buffer.Buffer, error) {
	if err := core.ValidateSampleRate("render", sampleRate); err != nil {
		return nil, err
	}
	if durationS < 0 || math.IsNaN(durationS) || math.IsInf(durationS, 0) {
		return nil, core.InvalidParameterf("render duration must be >= 0 and finite: %f", durationS)
	}
	if math.IsNaN(startS) || math.IsInf(startS, 0) {
		return nil, core.InvalidParameterf("render start must be finite: %f", startS)
	}

	n := int(math.RoundToEven(durationS * sampleRate))
	if n > 1 && !resolvable(startS, startS+durationS, sampleRate) {
		return nil, core.InvalidParameterf("render start %g s is too large to resolve a %g Hz sample spacing", startS, sampleRate)
	}
	ts := buffer.TimeAxis(n, startS, sampleRate)
	return buffer.New(Evaluate(s, ts), ts, sampleRate)
}

// resolvable reports whether float64 time stamps between start and end keep
// consecutive samples 1/sampleRate apart distinct, with margin for the
// rounding in start + i/sampleRate.
func resolvable(start, end, sampleRate float64) bool {
	m := math.Max(math.Abs(start), math.Abs(end))
	ulp := math.Nextafter(m, math.Inf(1)) - m
	return 1/sampleRate > 4*ulp
}

// Renderer renders signals at a configured sample rate.
type Renderer struct {
	cfg core.ProcessorConfig
}

// NewRenderer creates a renderer; the default sample rate is 44100 Hz.
func NewRenderer(opts ...core.ProcessorOption) *Renderer {
	return &Renderer{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the renderer processor configuration.
func (r *Renderer) Config() core.ProcessorConfig {
	return r.cfg
}

// Render evaluates s for durationS seconds starting at startS.
func (r *Renderer) Render(s Signal, durationS, startS float64) (*buffer.Buffer, error) {
	return Render(s, durationS, startS, r.cfg.SampleRate)
}
