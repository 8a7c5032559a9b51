package effects

import (
	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
)

// Chorus is a fixed multi-tap chorus: short, closely spaced taps whose
// attenuation is applied while the shifted copy is built.
type Chorus struct {
	taps
}

// NewChorus returns a chorus with paired delays (samples) and attenuations.
func NewChorus(delays []int, attenuations []float64, opts ...Option) (*Chorus, error) {
	t, err := newTaps("chorus", delays, attenuations, opts)
	if err != nil {
		return nil, err
	}
	return &Chorus{taps: t}, nil
}

// ProcessInPlace adds all taps into buf.
func (c *Chorus) ProcessInPlace(buf []float64) {
	c.accumulate(buf, func(shifted, src []float64, delay int, gain float64) {
		clear(shifted[:delay])
		vecmath.ScaleBlock(shifted[delay:], src[:len(src)-delay], gain)
	})
}

// Transform adds all taps into the buffer's samples.
func (c *Chorus) Transform(b *buffer.Buffer) error {
	c.ProcessInPlace(b.Samples())
	return nil
}
