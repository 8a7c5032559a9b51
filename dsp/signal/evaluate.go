package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Evaluate returns s sampled at the time stamps ts (seconds) with no
// modulation. A nil signal evaluates to silence.
func Evaluate(s Signal, ts []float64) []float64 {
	return eval(s, ts, nil)
}

// EvaluateModulated returns s sampled at ts with an additive phase offset.
// mod may be nil (no offset), hold a single value applied to every sample,
// or hold one value per time stamp.
func EvaluateModulated(s Signal, ts, mod []float64) ([]float64, error) {
	switch len(mod) {
	case 0:
		return eval(s, ts, nil), nil
	case len(ts):
		return eval(s, ts, mod), nil
	case 1:
		m := make([]float64, len(ts))
		for i := range m {
			m[i] = mod[0]
		}
		return eval(s, ts, m), nil
	default:
		return nil, core.InvalidParameterf("modulation length must be 1 or %d: %d", len(ts), len(mod))
	}
}

// eval dispatches on the variant. mod is nil or has len(ts) entries.
func eval(s Signal, ts, mod []float64) []float64 {
	out := make([]float64, len(ts))
	if len(ts) == 0 {
		return out
	}

	switch v := s.(type) {
	case nil:
	case Sine:
		w := 2 * math.Pi * v.freqHz
		for i, t := range ts {
			out[i] = v.amp * math.Sin(w*t+at(mod, i))
		}
	case Square:
		frac := cycleFraction(v.freqHz, ts, mod)
		m := buffer.Mean(frac)
		for i, f := range frac {
			out[i] = v.amp * sign(f-m)
		}
	case Triangle:
		frac := cycleFraction(v.freqHz, ts, mod)
		for i, f := range frac {
			frac[i] = math.Abs(f - 0.5)
		}
		// A batch with constant phase has no peak to rescale; leave it silent.
		if shaped, err := buffer.Normalize(buffer.Unbias(frac), v.amp); err == nil {
			out = shaped
		}
	case Sum:
		for _, child := range v.signals {
			vecmath.AddBlockInPlace(out, eval(child, ts, nil))
		}
	case FrequencyModulated:
		m := eval(v.modulator, ts, nil)
		vecmath.ScaleBlock(m, m, v.beta)
		if mod != nil {
			vecmath.AddBlockInPlace(m, mod)
		}
		out = eval(v.carrier, ts, m)
	case SelfModulated:
		selfModulate(out, v, ts, mod)
	default:
		panic(fmt.Sprintf("signal: unknown variant %T", s))
	}
	return out
}

// selfModulate is a scan over time indices carrying the previous output
// sample. The carrier sees one time stamp per call, so batch-relative
// shaping in Square and Triangle degenerates exactly as it does for any
// single-sample evaluation.
func selfModulate(out []float64, v SelfModulated, ts, mod []float64) {
	t1 := make([]float64, 1)
	m1 := make([]float64, 1)
	prev := 0.0
	for i, t := range ts {
		t1[0] = t
		m1[0] = v.beta*prev + at(mod, i)
		prev = eval(v.carrier, t1, m1)[0]
		out[i] = prev
	}
}

// cycleFraction returns the fractional part, in [0, 1), of
// freq*t + mod for every time stamp.
func cycleFraction(freqHz float64, ts, mod []float64) []float64 {
	frac := make([]float64, len(ts))
	for i, t := range ts {
		c := freqHz*t + at(mod, i)
		frac[i] = c - math.Floor(c)
	}
	return frac
}

func at(mod []float64, i int) float64 {
	if mod == nil {
		return 0
	}
	return mod[i]
}

// sign returns -1, 0 or +1; zero stays zero.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
