package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter reports a parameter rejected at construction or
	// render time: non-positive sample rates, negative durations, mismatched
	// tap sequences and similar.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateBuffer reports a buffer whose peak is zero, so it cannot
	// be rescaled.
	ErrDegenerateBuffer = errors.New("degenerate buffer")
)

// InvalidParameterf returns an error wrapping ErrInvalidParameter.
func InvalidParameterf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// IsFinitePositive reports whether v is > 0 and neither NaN nor Inf.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateSampleRate checks that a sample rate is usable.
func ValidateSampleRate(component string, sampleRate float64) error {
	if !IsFinitePositive(sampleRate) {
		return InvalidParameterf("%s sample rate must be > 0 and finite: %f", component, sampleRate)
	}
	return nil
}
