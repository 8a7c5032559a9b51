package biquad

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pmsynth/dsp/buffer"
	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-pmsynth/internal/testutil"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// aliasedReference runs the recursion over a single array that serves as both
// input and output, so the x[i-1] and x[i-2] reads see filtered values.
func aliasedReference(c Coefficients, in []float64) []float64 {
	ys := append([]float64(nil), in...)
	for i := 2; i < len(ys); i++ {
		ys[i] = c.A0*ys[i] + c.A1*ys[i-1] + c.A2*ys[i-2] - c.B1*ys[i-1] - c.B2*ys[i-2]
	}
	return ys
}

// reference applies the difference equation with separate dry and wet arrays.
func reference(c Coefficients, dry []float64) []float64 {
	wet := make([]float64, len(dry))
	copy(wet, dry)
	for i := 2; i < len(dry); i++ {
		wet[i] = c.A0*dry[i] + c.A1*dry[i-1] + c.A2*dry[i-2] - c.B1*wet[i-1] - c.B2*wet[i-2]
	}
	return wet
}

func steadyPeak(ys []float64) float64 {
	return buffer.Peak(ys[len(ys)/2:])
}

func TestProcessMatchesDifferenceEquation(t *testing.T) {
	c := Coefficients{A0: 0.5, A1: 0.25, A2: 0.125, B1: -0.5, B2: 0.25}
	in := testutil.DeterministicNoise(11, 1, 64)

	tests := []struct {
		history History
		want    []float64
	}{
		{AliasedHistory, aliasedReference(c, in)},
		{DryHistory, reference(c, in)},
	}
	for _, tt := range tests {
		f := &Filter{Coefficients: c, History: tt.history}
		got := append([]float64(nil), in...)
		f.ProcessInPlace(got)
		testutil.RequireSliceNearlyEqual(t, got, tt.want, 0)
	}
}

func TestDefaultHistoryIsAliased(t *testing.T) {
	f, err := NewLowPass(0.707, 1000, 44100)
	if err != nil {
		t.Fatalf("NewLowPass() error = %v", err)
	}
	if f.History != AliasedHistory {
		t.Fatalf("History = %v, want %v", f.History, AliasedHistory)
	}

	x := testutil.DeterministicSine(5000, 44100, 1, 44100)
	want := aliasedReference(f.Coefficients, x)
	f.ProcessInPlace(x)
	testutil.RequireSliceNearlyEqual(t, x, want, 0)
}

func TestHistoryModesDiverge(t *testing.T) {
	aliased, _ := NewLowPass(0.707, 1000, 44100)
	dry, _ := NewLowPass(0.707, 1000, 44100, WithHistory(DryHistory))

	a := testutil.DeterministicSine(5000, 44100, 1, 44100)
	d := append([]float64(nil), a...)
	aliased.ProcessInPlace(a)
	dry.ProcessInPlace(d)

	if a[2] != d[2] {
		t.Fatalf("index 2 reads only seed samples, got %v vs %v", a[2], d[2])
	}
	diff, err := testutil.MaxAbsDiff(a, d)
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if diff < 0.5 {
		t.Fatalf("history modes differ by %v, expected a large startup divergence", diff)
	}
	if sa, sd := steadyPeak(a), steadyPeak(d); !(sa < sd) {
		t.Fatalf("aliased steady peak %v should be below dry %v", sa, sd)
	}
}

func TestEffectiveMatchesSteadyState(t *testing.T) {
	for _, kind := range []Kind{LowPass, HighPass} {
		for _, h := range []History{AliasedHistory, DryHistory} {
			f, err := New(kind, 0.707, 1000, 44100, WithHistory(h))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			for _, tone := range []float64{100, 5000} {
				x := testutil.DeterministicSine(tone, 44100, 1, 44100)
				f.ProcessInPlace(x)
				eff := f.Effective()
				want := math.Sqrt(eff.MagnitudeSquared(tone, 44100))
				if p := steadyPeak(x); math.Abs(p-want) > 0.01*math.Max(want, 0.1) {
					t.Fatalf("%v/%v %v Hz: steady peak %v, want %v", kind, h, tone, p, want)
				}
			}
		}
	}
}

func TestEffectiveCoefficients(t *testing.T) {
	c := Coefficients{A0: 0.5, A1: 0.25, A2: 0.125, B1: -0.5, B2: 0.25}
	if got := (&Filter{Coefficients: c, History: DryHistory}).Effective(); got != c {
		t.Fatalf("dry Effective() = %+v, want %+v", got, c)
	}
	want := Coefficients{A0: 0.5, B1: -0.75, B2: 0.125}
	if got := (&Filter{Coefficients: c}).Effective(); got != want {
		t.Fatalf("aliased Effective() = %+v, want %+v", got, want)
	}
}

func TestHistoryOption(t *testing.T) {
	if _, err := NewLowPass(0.707, 1000, 44100, WithHistory(History(7))); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("NewLowPass(bad history) error = %v, want ErrInvalidParameter", err)
	}
	if AliasedHistory.String() != "aliased" || DryHistory.String() != "dry" || History(7).String() != "History(7)" {
		t.Fatalf("unexpected names: %v %v %v", AliasedHistory, DryHistory, History(7))
	}
}

func TestStartupSamplesPassThrough(t *testing.T) {
	f, err := NewLowPass(0.707, 1000, 44100)
	if err != nil {
		t.Fatalf("NewLowPass() error = %v", err)
	}
	buf := []float64{0.9, -0.4, 0.3, 0.1}
	f.ProcessInPlace(buf)
	if buf[0] != 0.9 || buf[1] != -0.4 {
		t.Fatalf("first samples = %v, %v; want 0.9, -0.4", buf[0], buf[1])
	}
	if buf[2] == 0.3 {
		t.Fatal("third sample should be filtered")
	}
}

func TestShortBuffersUnchanged(t *testing.T) {
	f, _ := NewHighPass(0.707, 1000, 44100)
	for _, in := range [][]float64{nil, {0.5}, {0.5, -0.5}} {
		buf := append([]float64(nil), in...)
		f.ProcessInPlace(buf)
		testutil.RequireSliceNearlyEqual(t, buf, in, 0)
	}
}

func TestProcessToMatchesInPlace(t *testing.T) {
	for _, h := range []History{AliasedHistory, DryHistory} {
		f, _ := NewLowPass(2, 3000, 48000, WithHistory(h))
		src := testutil.DeterministicNoise(5, 0.5, 300)
		orig := append([]float64(nil), src...)

		dst := make([]float64, len(src))
		if err := f.ProcessTo(dst, src); err != nil {
			t.Fatalf("ProcessTo() error = %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, src, orig, 0)

		f.ProcessInPlace(src)
		testutil.RequireSliceNearlyEqual(t, dst, src, 0)
	}
}

func TestProcessToLengthMismatch(t *testing.T) {
	f, _ := NewLowPass(0.707, 1000, 44100)
	err := f.ProcessTo(make([]float64, 3), make([]float64, 4))
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("ProcessTo() error = %v, want ErrInvalidParameter", err)
	}
}

func TestLowPassRejectsHighTone(t *testing.T) {
	f, err := NewLowPass(0.707, 1000, 44100)
	if err != nil {
		t.Fatalf("NewLowPass() error = %v", err)
	}
	x := testutil.DeterministicSine(5000, 44100, 1, 44100)
	f.ProcessInPlace(x)
	testutil.RequireFinite(t, x)
	if p := steadyPeak(x); p > 0.1 {
		t.Fatalf("steady-state amplitude = %v, want well below 1", p)
	}
}

func TestLowPassPassesLowTone(t *testing.T) {
	f, _ := NewLowPass(0.707, 1000, 44100, WithHistory(DryHistory))
	x := testutil.DeterministicSine(100, 44100, 1, 44100)
	f.ProcessInPlace(x)
	if p := steadyPeak(x); math.Abs(p-1) > 0.02 {
		t.Fatalf("steady-state amplitude = %v, want ~1", p)
	}
}

func TestHighPassRejectsLowTone(t *testing.T) {
	f, _ := NewHighPass(0.707, 1000, 44100, WithHistory(DryHistory))
	x := testutil.DeterministicSine(100, 44100, 1, 44100)
	f.ProcessInPlace(x)
	if p := steadyPeak(x); p > 0.05 {
		t.Fatalf("steady-state amplitude = %v, want < 0.05", p)
	}
}

func TestTransformReusesFilter(t *testing.T) {
	f, _ := NewLowPass(0.707, 1000, 44100)
	if f.Kind() != LowPass || f.Q() != 0.707 || f.CutoffHz() != 1000 || f.SampleRate() != 44100 {
		t.Fatalf("accessors = (%v, %v, %v, %v)", f.Kind(), f.Q(), f.CutoffHz(), f.SampleRate())
	}

	in := testutil.DeterministicNoise(1, 1, 128)
	a, _ := buffer.FromSamples(append([]float64(nil), in...), 44100)
	b, _ := buffer.FromSamples(append([]float64(nil), in...), 44100)
	if err := a.Apply(f); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if err := b.Apply(f); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, a.Samples(), b.Samples(), 0)
	testutil.RequireSliceNearlyEqual(t, a.Samples(), aliasedReference(f.Coefficients, in), 0)
}

func TestTransformSampleRateMismatch(t *testing.T) {
	f, _ := NewLowPass(0.707, 1000, 44100)
	b, _ := buffer.FromSamples(make([]float64, 8), 48000)
	if err := f.Transform(b); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Transform() error = %v, want ErrInvalidParameter", err)
	}
}
