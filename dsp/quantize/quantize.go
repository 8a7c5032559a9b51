// Package quantize maps normalized float samples onto signed integer codes
// for an audio encoder.
//
// Out-of-range input is not clipped: it is renormalized to a peak of 1 and
// the returned [Result] carries a [RangeWarning] so callers can see that the
// encoded amplitude was changed.
package quantize

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

const (
	minBitDepth = 2
	maxBitDepth = 32
)

// Integer is the set of sample code types Quantize can produce.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// RangeWarning reports that input exceeded [-1, 1] and was renormalized
// before quantization. It is recoverable; the quantized samples are valid.
type RangeWarning struct {
	// Peak is the largest input magnitude seen.
	Peak float64
}

func (w *RangeWarning) Error() string {
	return fmt.Sprintf("quantize: input peak %g exceeds [-1, 1], normalized before quantizing", w.Peak)
}

// Result holds quantized codes and an optional diagnostic.
type Result[T Integer] struct {
	Samples []T
	Warning *RangeWarning
}

// Bound returns 2^(bits-1) - 1, the full-scale code of a signed PCM
// encoding with the given bit depth.
func Bound(bits int) (float64, error) {
	if bits < minBitDepth || bits > maxBitDepth {
		return 0, core.InvalidParameterf("quantize bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
	}
	return math.Exp2(float64(bits-1)) - 1, nil
}

// Quantize returns round(ys[i] * bound) as T, clamped to T's range.
// If any sample lies outside [-1, 1] the whole slice is first normalized to
// peak 1 and Result.Warning is set. NaN and Inf are rejected. ys is not
// modified.
func Quantize[T Integer](ys []float64, bound float64) (Result[T], error) {
	if !core.IsFinitePositive(bound) {
		return Result[T]{}, core.InvalidParameterf("quantize bound must be > 0 and finite: %f", bound)
	}

	var warning *RangeWarning
	src := ys
	for i, v := range ys {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result[T]{}, core.InvalidParameterf("quantize input must be finite at index %d: %f", i, v)
		}
		if v > 1 || v < -1 {
			if warning == nil {
				warning = &RangeWarning{}
			}
			warning.Peak = math.Max(warning.Peak, math.Abs(v))
		}
	}
	if warning != nil {
		normalized, err := buffer.Normalize(ys, 1)
		if err != nil {
			return Result[T]{}, err
		}
		src = normalized
	}

	lo, hi := limits[T]()
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(core.Clamp(math.Round(v*bound), lo, hi))
	}
	return Result[T]{Samples: out, Warning: warning}, nil
}

// limits returns the representable range of T as float64 values that
// convert back to T without overflow.
func limits[T Integer]() (lo, hi float64) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	lo = -math.Ldexp(1, bits-1)
	hi = math.Ldexp(1, bits-1) - 1
	if bits == 64 {
		hi = math.Nextafter(-lo, 0)
	}
	return lo, hi
}
