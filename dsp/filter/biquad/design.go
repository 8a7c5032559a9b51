package biquad

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

// Kind selects the filter response.
type Kind int

const (
	// LowPass passes frequencies below the cutoff.
	LowPass Kind = iota
	// HighPass passes frequencies above the cutoff.
	HighPass
)

func (k Kind) String() string {
	switch k {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Coefficients holds the transfer function of one biquad,
//
//	H(z) = (A0 + A1 z^-1 + A2 z^-2) / (1 + B1 z^-1 + B2 z^-2)
type Coefficients struct {
	A0, A1, A2 float64 // feedforward
	B1, B2     float64 // feedback
}

// Design computes resonant biquad coefficients for the given Q, cutoff
// frequency (Hz) and sample rate (Hz). The cutoff must lie strictly between
// 0 and Nyquist.
func Design(kind Kind, q, cutoffHz, sampleRate float64) (Coefficients, error) {
	if err := core.ValidateSampleRate("biquad", sampleRate); err != nil {
		return Coefficients{}, err
	}
	if !core.IsFinitePositive(q) {
		return Coefficients{}, core.InvalidParameterf("biquad Q must be > 0 and finite: %f", q)
	}
	if !(cutoffHz > 0 && cutoffHz < sampleRate/2) {
		return Coefficients{}, core.InvalidParameterf("biquad cutoff must be in (0, %f): %f", sampleRate/2, cutoffHz)
	}

	w := 2 * math.Pi * cutoffHz / sampleRate
	d := 1 / q
	damp := 0.5 * d * math.Sin(w)
	beta := 0.5 * (1 - damp) / (1 + damp)
	gamma := (0.5 + beta) * math.Cos(w)

	c := Coefficients{
		B1: -2 * gamma,
		B2: 2 * beta,
	}
	switch kind {
	case LowPass:
		c.A1 = 0.5 + beta - gamma
		c.A0 = 0.5 * c.A1
	case HighPass:
		c.A1 = -(0.5 + beta + gamma)
		c.A0 = -0.5 * c.A1
	default:
		return Coefficients{}, core.InvalidParameterf("biquad kind unknown: %v", kind)
	}
	c.A2 = c.A0
	return c, nil
}
