package effects

import (
	"math"

	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// taps holds validated tap parameters shared by Delay and Chorus.
type taps struct {
	delays       []int
	attenuations []float64
	mode         TapMode
}

func newTaps(component string, delays []int, attenuations []float64, opts []Option) (taps, error) {
	if len(delays) != len(attenuations) {
		return taps{}, core.InvalidParameterf("%s delays/attenuations length mismatch: %d != %d",
			component, len(delays), len(attenuations))
	}
	for i, d := range delays {
		if d < 0 {
			return taps{}, core.InvalidParameterf("%s delay must be >= 0 at tap %d: %d", component, i, d)
		}
	}
	for i, g := range attenuations {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return taps{}, core.InvalidParameterf("%s attenuation must be finite at tap %d: %f", component, i, g)
		}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return taps{}, err
		}
	}

	t := taps{
		delays:       make([]int, len(delays)),
		attenuations: make([]float64, len(attenuations)),
		mode:         cfg.mode,
	}
	copy(t.delays, delays)
	copy(t.attenuations, attenuations)
	return t, nil
}

// Delays returns a copy of the tap delays in samples.
func (t *taps) Delays() []int {
	out := make([]int, len(t.delays))
	copy(out, t.delays)
	return out
}

// Attenuations returns a copy of the tap gains.
func (t *taps) Attenuations() []float64 {
	out := make([]float64, len(t.attenuations))
	copy(out, t.attenuations)
	return out
}

// Mode returns the tap read mode.
func (t *taps) Mode() TapMode {
	return t.mode
}

// source returns the slice taps read from: buf itself in Cumulative mode,
// otherwise a copy taken before any tap is added.
func (t *taps) source(buf []float64) []float64 {
	if t.mode == Cumulative {
		return buf
	}
	dry := make([]float64, len(buf))
	copy(dry, buf)
	return dry
}

// shift writes src delayed by d samples into dst, zero-padding the head.
// d must be < len(dst).
func shift(dst, src []float64, d int) {
	n := len(dst)
	clear(dst[:d])
	copy(dst[d:], src[:n-d])
}

// accumulate adds each tap's shifted copy into buf. build fills the shifted
// copy for one tap, including its attenuation.
func (t *taps) accumulate(buf []float64, build func(shifted, src []float64, d int, gain float64)) {
	n := len(buf)
	if n == 0 || len(t.delays) == 0 {
		return
	}
	src := t.source(buf)
	shifted := make([]float64, n)
	for k, d := range t.delays {
		if d >= n {
			continue
		}
		build(shifted, src, d, t.attenuations[k])
		vecmath.AddBlockInPlace(buf, shifted)
	}
}
