package signal

// Signal is a node of a signal tree. The set of variants is closed: only the
// types in this package implement it.
type Signal interface {
	isSignal()
}

// Sine is amp * sin(2*pi*freq*t + modulation).
type Sine struct {
	freqHz float64
	amp    float64
}

// Square is a bipolar square wave whose phase offset is measured in cycles.
type Square struct {
	freqHz float64
	amp    float64
}

// Triangle is a triangle wave rescaled to peak amplitude amp over each
// evaluated batch.
type Triangle struct {
	freqHz float64
	amp    float64
}

// Sum adds the outputs of its children. Modulation is not forwarded.
type Sum struct {
	signals []Signal
}

// FrequencyModulated evaluates carrier with an added phase offset of
// beta * modulator(t).
type FrequencyModulated struct {
	carrier   Signal
	modulator Signal
	beta      float64
}

// SelfModulated evaluates carrier with a phase offset of beta times its own
// previous output sample, starting from zero.
type SelfModulated struct {
	carrier Signal
	beta    float64
}

func (Sine) isSignal()               {}
func (Square) isSignal()             {}
func (Triangle) isSignal()           {}
func (Sum) isSignal()                {}
func (FrequencyModulated) isSignal() {}
func (SelfModulated) isSignal()      {}

// NewSine returns a sine generator.
func NewSine(freqHz, amp float64) Sine {
	return Sine{freqHz: freqHz, amp: amp}
}

// NewSquare returns a square generator.
func NewSquare(freqHz, amp float64) Square {
	return Square{freqHz: freqHz, amp: amp}
}

// NewTriangle returns a triangle generator.
func NewTriangle(freqHz, amp float64) Triangle {
	return Triangle{freqHz: freqHz, amp: amp}
}

// FreqHz returns the frequency in Hz.
func (s Sine) FreqHz() float64 { return s.freqHz }

// Amp returns the amplitude.
func (s Sine) Amp() float64 { return s.amp }

// FreqHz returns the frequency in Hz.
func (s Square) FreqHz() float64 { return s.freqHz }

// Amp returns the amplitude.
func (s Square) Amp() float64 { return s.amp }

// FreqHz returns the frequency in Hz.
func (s Triangle) FreqHz() float64 { return s.freqHz }

// Amp returns the amplitude.
func (s Triangle) Amp() float64 { return s.amp }

// Signals returns a copy of the summed children.
func (s Sum) Signals() []Signal {
	out := make([]Signal, len(s.signals))
	copy(out, s.signals)
	return out
}

// Carrier returns the modulated signal.
func (s FrequencyModulated) Carrier() Signal { return s.carrier }

// Modulator returns the modulating signal.
func (s FrequencyModulated) Modulator() Signal { return s.modulator }

// Beta returns the modulation depth.
func (s FrequencyModulated) Beta() float64 { return s.beta }

// Carrier returns the fed-back signal.
func (s SelfModulated) Carrier() Signal { return s.carrier }

// Beta returns the feedback depth.
func (s SelfModulated) Beta() float64 { return s.beta }

// Add sums signals. Nil operands are the zero signal and are dropped, so
// Add(s, nil) returns s itself. Add of nothing but zeros is nil.
func Add(signals ...Signal) Signal {
	kept := make([]Signal, 0, len(signals))
	for _, s := range signals {
		if s != nil {
			kept = append(kept, s)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return Sum{signals: kept}
	}
}

// Modulate returns carrier frequency-modulated by modulator with depth beta.
// A nil modulator leaves carrier unchanged; a nil carrier stays nil.
func Modulate(carrier, modulator Signal, beta float64) Signal {
	if carrier == nil {
		return nil
	}
	if modulator == nil {
		return carrier
	}
	return FrequencyModulated{carrier: carrier, modulator: modulator, beta: beta}
}

// SelfModulate returns carrier fed back into its own phase with depth beta.
// A nil carrier stays nil.
func SelfModulate(carrier Signal, beta float64) Signal {
	if carrier == nil {
		return nil
	}
	return SelfModulated{carrier: carrier, beta: beta}
}
