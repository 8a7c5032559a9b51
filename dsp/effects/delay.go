package effects

import (
	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
)

// Delay is a multi-tap echo: each tap's shifted copy is built first and then
// scaled by its attenuation.
type Delay struct {
	taps
}

// NewDelay returns a delay with paired delays (samples) and attenuations.
func NewDelay(delays []int, attenuations []float64, opts ...Option) (*Delay, error) {
	t, err := newTaps("delay", delays, attenuations, opts)
	if err != nil {
		return nil, err
	}
	return &Delay{taps: t}, nil
}

// ProcessInPlace adds all taps into buf.
func (d *Delay) ProcessInPlace(buf []float64) {
	d.accumulate(buf, func(shifted, src []float64, delay int, gain float64) {
		shift(shifted, src, delay)
		vecmath.ScaleBlock(shifted, shifted, gain)
	})
}

// Transform adds all taps into the buffer's samples.
func (d *Delay) Transform(b *buffer.Buffer) error {
	d.ProcessInPlace(b.Samples())
	return nil
}
