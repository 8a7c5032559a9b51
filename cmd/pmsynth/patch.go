package main

import (
	"github.com/cwbudde/algo-pmsynth/dsp/signal"
)

type patchEntry struct {
	name  string
	desc  string
	build func() signal.Signal
}

var (
	chorusDelays       = []int{13, 17, 19, 23, 29, 31, 37}
	chorusAttenuations = []float64{0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7}
)

var registry = []patchEntry{
	{"a3", "220 Hz sine", func() signal.Signal {
		return signal.NewSine(220, 1)
	}},
	{"a4", "440 Hz sine", func() signal.Signal {
		return signal.NewSine(440, 1)
	}},
	{"fm", "220 Hz sine modulated by 1440 Hz, beta 1", func() signal.Signal {
		return signal.Modulate(signal.NewSine(220, 1), signal.NewSine(1440, 1), 1)
	}},
	{"feedback", "220 Hz sine with single-sample feedback, beta 0.5", func() signal.Signal {
		return signal.SelfModulate(signal.NewSine(220, 1), 0.5)
	}},
	{"square", "220 Hz square", func() signal.Signal {
		return signal.NewSquare(220, 1)
	}},
	{"triangle", "220 Hz triangle", func() signal.Signal {
		return signal.NewTriangle(220, 1)
	}},
	{"chord", "A3 + C#4 + E4 sines", func() signal.Signal {
		return signal.Add(
			signal.NewSine(220, 0.4),
			signal.NewSine(277.18, 0.3),
			signal.NewSine(329.63, 0.3),
		)
	}},
}

func lookupPatch(name string) (patchEntry, bool) {
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}
	return patchEntry{}, false
}
