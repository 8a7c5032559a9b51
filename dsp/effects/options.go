package effects

import (
	"fmt"

	"github.com/cwbudde/algo-pmsynth/dsp/core"
)

// TapMode selects the read source for each tap.
type TapMode int

const (
	// DrySnapshot reads every tap from the unprocessed input.
	DrySnapshot TapMode = iota
	// Cumulative reads each tap from the buffer after all earlier taps were
	// added, reproducing the accumulate-into-source ordering.
	Cumulative
)

func (m TapMode) String() string {
	switch m {
	case DrySnapshot:
		return "dry-snapshot"
	case Cumulative:
		return "cumulative"
	default:
		return fmt.Sprintf("TapMode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m TapMode) Valid() bool {
	return m == DrySnapshot || m == Cumulative
}

type config struct {
	mode TapMode
}

func defaultConfig() config {
	return config{mode: DrySnapshot}
}

// Option configures a [Delay] or [Chorus].
type Option func(*config) error

// WithTapMode sets the tap read source (default [DrySnapshot]).
func WithTapMode(m TapMode) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return core.InvalidParameterf("effects: invalid tap mode: %d", int(m))
		}
		cfg.mode = m
		return nil
	}
}
