// Command pmsynth renders a demo patch, applies effects, prints its
// strongest spectral peaks and writes a 16-bit WAV file.
//
// Usage:
//
//	pmsynth [flags] [patch]
//
// Examples:
//
//	pmsynth -list
//	pmsynth -chorus fm
//	pmsynth -lowpass 1000 -q 0.707 -out square.wav square
//	pmsynth -gain -6 -silence 0.5 chord
//	pmsynth -play -player aplay a3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-pmsynth/dsp/effects"
	"github.com/cwbudde/algo-pmsynth/dsp/filter/biquad"
	dspsignal "github.com/cwbudde/algo-pmsynth/dsp/signal"
	"github.com/cwbudde/algo-pmsynth/dsp/spectrum"
	"github.com/cwbudde/algo-pmsynth/internal/player"
	"github.com/cwbudde/algo-pmsynth/internal/wavfile"
	"github.com/sirupsen/logrus"
)

type options struct {
	patch      string
	duration   float64
	start      float64
	sampleRate float64
	chorus     bool
	cumulative bool
	lowpass    float64
	q          float64
	dryHistory bool
	normalize  bool
	gainDB     float64
	peaks      int
	out        string
	silence    float64
	play       bool
	player     string
}

func main() {
	var opts options
	flag.Float64Var(&opts.duration, "duration", 1, "duration in seconds")
	flag.Float64Var(&opts.start, "start", 0, "start time in seconds")
	flag.Float64Var(&opts.sampleRate, "rate", 44100, "sample rate in Hz")
	flag.BoolVar(&opts.chorus, "chorus", false, "apply the 7-tap chorus")
	flag.BoolVar(&opts.cumulative, "cumulative", false, "chorus taps read earlier echoes instead of the dry signal")
	flag.Float64Var(&opts.lowpass, "lowpass", 0, "low-pass cutoff in Hz (0 disables)")
	flag.Float64Var(&opts.q, "q", 0.707, "low-pass resonance")
	flag.BoolVar(&opts.dryHistory, "dry-history", false, "low-pass feed-forward taps read the unfiltered input")
	flag.BoolVar(&opts.normalize, "normalize", true, "normalize to full scale before encoding")
	flag.Float64Var(&opts.gainDB, "gain", 0, "output gain in dB, applied after normalization")
	flag.IntVar(&opts.peaks, "peaks", 8, "number of spectral peaks to print (0 disables)")
	flag.StringVar(&opts.out, "out", "pmsynth.wav", "output WAV path (empty disables)")
	flag.Float64Var(&opts.silence, "silence", 0, "trailing silence in seconds")
	flag.BoolVar(&opts.play, "play", false, "play the written file")
	flag.StringVar(&opts.player, "player", player.DefaultCommand, "external player command")
	list := flag.Bool("list", false, "list available patches")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pmsynth [flags] [patch]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a demo patch (default fm) and writes it as 16-bit mono WAV.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pmsynth -list\n")
		fmt.Fprintf(os.Stderr, "  pmsynth -chorus fm\n")
		fmt.Fprintf(os.Stderr, "  pmsynth -lowpass 1000 -q 0.707 square\n")
	}
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if *list {
		printList(os.Stdout)
		return
	}

	opts.patch = "fm"
	if flag.NArg() > 0 {
		opts.patch = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		logrus.WithError(err).Error("pmsynth failed")
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range registry {
		fmt.Fprintf(tw, "%s\t%s\n", e.name, e.desc)
	}
	tw.Flush()
}

func run(ctx context.Context, opts options, out io.Writer) error {
	b, err := render(opts)
	if err != nil {
		return err
	}

	if opts.peaks > 0 {
		s, err := spectrum.Compute(b, false)
		if err != nil {
			return err
		}
		printPeaks(out, s.Peaks(opts.peaks), s.Len())
	}

	if opts.out == "" {
		return nil
	}
	if err := wavfile.WriteFile(opts.out, b, opts.silence); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"path":    opts.out,
		"samples": b.Len(),
		"rate":    b.SampleRate(),
	}).Info("Wrote WAV file")

	if opts.play {
		return player.New(opts.player).Play(ctx, opts.out)
	}
	return nil
}

// render builds the patch and runs the effect chain over it.
func render(opts options) (*buffer.Buffer, error) {
	entry, ok := lookupPatch(opts.patch)
	if !ok {
		return nil, fmt.Errorf("unknown patch %q (see -list)", opts.patch)
	}

	if err := core.ValidateSampleRate("pmsynth", opts.sampleRate); err != nil {
		return nil, err
	}
	r := dspsignal.NewRenderer(core.WithSampleRate(opts.sampleRate))
	b, err := r.Render(entry.build(), opts.duration, opts.start)
	if err != nil {
		return nil, err
	}

	var chain []buffer.Transformer
	if opts.chorus {
		mode := effects.DrySnapshot
		if opts.cumulative {
			mode = effects.Cumulative
		}
		c, err := effects.NewChorus(chorusDelays, chorusAttenuations, effects.WithTapMode(mode))
		if err != nil {
			return nil, err
		}
		chain = append(chain, c)
	}
	if opts.lowpass > 0 {
		history := biquad.AliasedHistory
		if opts.dryHistory {
			history = biquad.DryHistory
		}
		f, err := biquad.NewLowPass(opts.q, opts.lowpass, opts.sampleRate, biquad.WithHistory(history))
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	for _, t := range chain {
		if err := b.Apply(t); err != nil {
			return nil, err
		}
	}

	if opts.normalize {
		err := b.Normalize(1)
		if err != nil && !errors.Is(err, core.ErrDegenerateBuffer) {
			return nil, err
		}
	}
	if opts.gainDB != 0 {
		if math.IsNaN(opts.gainDB) || math.IsInf(opts.gainDB, 0) {
			return nil, core.InvalidParameterf("gain must be finite: %f", opts.gainDB)
		}
		b.Scale(core.DBToLinear(opts.gainDB))
	}
	return b, nil
}

func printPeaks(w io.Writer, peaks []spectrum.Peak, bins int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Bin\tFreq (Hz)\tAmplitude\tLevel (dB)\t\n")
	ref := 0.0
	if len(peaks) > 0 {
		ref = peaks[0].Amplitude
	}
	for _, p := range peaks {
		fmt.Fprintf(tw, "%d\t%.1f\t%.4g\t%.1f\t\n", p.Bin, p.Freq, p.Amplitude, core.LinearToDB(p.Amplitude/ref))
	}
	fmt.Fprintf(tw, "\t\t\t%d bins\t\n", bins)
	tw.Flush()
}
