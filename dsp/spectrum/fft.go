package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// planFor returns an algo-fft plan for power-of-two sizes, or nil when the
// go-dsp fallback should be used.
func planFor(n int) *algofft.Plan[complex128] {
	if !isPowerOfTwo(n) {
		return nil
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil
	}
	return plan
}

// forward returns the unnormalized DFT of the real sequence ys.
func forward(ys []float64) ([]complex128, error) {
	n := len(ys)
	plan := planFor(n)
	if plan == nil {
		return fft.FFTReal(ys), nil
	}

	src := make([]complex128, n)
	for i, v := range ys {
		src[i] = complex(v, 0)
	}
	dst := make([]complex128, n)
	if err := plan.Forward(dst, src); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}
	return dst, nil
}

// inverse returns the 1/N-normalized inverse DFT of hs.
func inverse(hs []complex128) ([]complex128, error) {
	n := len(hs)
	plan := planFor(n)
	if plan == nil {
		return fft.IFFT(hs), nil
	}

	dst := make([]complex128, n)
	if err := plan.Inverse(dst, hs); err != nil {
		return nil, fmt.Errorf("spectrum: inverse fft: %w", err)
	}
	return dst, nil
}
