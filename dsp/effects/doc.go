// Package effects provides offline multi-tap delay effects.
//
// [Delay] and [Chorus] add attenuated, time-shifted copies of a buffer back
// into it. Each tap k shifts the signal right by delays[k] samples
// (zero-padded) and scales it by attenuations[k].
//
// Which signal a tap reads is selected by [TapMode]. With [DrySnapshot], the
// default, every tap reads the dry input as it was before the first tap.
// With [Cumulative], each tap reads the buffer as left by the previous taps,
// so later taps also echo earlier echoes.
package effects
