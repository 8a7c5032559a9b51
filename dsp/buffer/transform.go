package buffer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Peak returns max(|max(ys)|, |min(ys)|), or 0 for an empty slice.
func Peak(ys []float64) float64 {
	peak := 0.0
	for _, v := range ys {
		if av := math.Abs(v); av > peak {
			peak = av
		}
	}
	return peak
}

// Mean returns the arithmetic mean of ys, or 0 for an empty slice.
func Mean(ys []float64) float64 {
	if len(ys) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range ys {
		sum += v
	}
	return sum / float64(len(ys))
}

// Normalize returns amp*ys/peak as a new slice, so the result's peak
// magnitude is |amp|. A zero peak (empty or all-zero input) is reported as
// core.ErrDegenerateBuffer instead of producing NaN or Inf.
func Normalize(ys []float64, amp float64) ([]float64, error) {
	peak := Peak(ys)
	if peak == 0 {
		return nil, degenerate(len(ys))
	}
	out := make([]float64, len(ys))
	vecmath.ScaleBlock(out, ys, amp/peak)
	return out, nil
}

// Unbias returns ys - mean(ys) as a new slice.
func Unbias(ys []float64) []float64 {
	out := make([]float64, len(ys))
	m := Mean(ys)
	for i, v := range ys {
		out[i] = v - m
	}
	return out
}

func degenerate(n int) error {
	return fmt.Errorf("%w: normalize requires a non-zero peak (%d samples)", core.ErrDegenerateBuffer, n)
}
