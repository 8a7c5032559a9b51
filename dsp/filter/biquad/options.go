package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

// History selects which samples feed the A1 and A2 taps.
type History int

const (
	// AliasedHistory reads x[i-1] and x[i-2] from storage that already holds
	// the filtered outputs, as happens when the input buffer is overwritten
	// while the recursion runs. The feed-forward taps then see y[i-1] and
	// y[i-2].
	AliasedHistory History = iota
	// DryHistory keeps the unfiltered input for the feed-forward taps, which
	// is the textbook direct-form I recursion.
	DryHistory
)

func (h History) String() string {
	switch h {
	case AliasedHistory:
		return "aliased"
	case DryHistory:
		return "dry"
	default:
		return fmt.Sprintf("History(%d)", int(h))
	}
}

// Valid reports whether h is a known mode.
func (h History) Valid() bool {
	return h == AliasedHistory || h == DryHistory
}

type config struct {
	history History
}

// Option configures a [Filter].
type Option func(*config) error

// WithHistory sets the feed-forward history mode (default [AliasedHistory]).
func WithHistory(h History) Option {
	return func(cfg *config) error {
		if !h.Valid() {
			return core.InvalidParameterf("biquad: invalid history mode: %d", int(h))
		}
		cfg.history = h
		return nil
	}
}
