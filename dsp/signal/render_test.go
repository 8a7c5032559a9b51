package signal

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pmsynth/dsp/core"
	"github.com/cwbudde/algo-pmsynth/internal/testutil"
)

func TestRenderSine220(t *testing.T) {
	b, err := Render(NewSine(220, 1), 1, 0, 44100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	ys := b.Samples()
	if len(ys) != 44100 || len(b.Times()) != 44100 {
		t.Fatalf("len = (%d, %d), want 44100", len(ys), len(b.Times()))
	}
	if ys[0] != 0 {
		t.Fatalf("ys[0] = %v, want 0", ys[0])
	}

	crossing := testutil.FallingCrossing(ys)
	if math.Abs(float64(crossing)-44100.0/440) > 1 {
		t.Fatalf("first zero crossing at %d, want near %v", crossing, 44100.0/440)
	}
}

func TestRenderStartOffset(t *testing.T) {
	b, err := Render(NewSine(1, 1), 0.5, 2, 8)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	ts := b.Times()
	if len(ts) != 4 || ts[0] != 2 || ts[3] != 2.375 {
		t.Fatalf("times = %v", ts)
	}
	if b.SampleRate() != 8 {
		t.Fatalf("SampleRate() = %v, want 8", b.SampleRate())
	}
}

func TestRenderSampleCountRounding(t *testing.T) {
	tests := []struct {
		dur  float64
		rate float64
		want int
	}{
		{0, 44100, 0},
		{2.5, 1, 2},
		{3.5, 1, 4},
		{0.1, 44100, 4410},
	}
	for _, tt := range tests {
		b, err := Render(NewSine(1, 1), tt.dur, 0, tt.rate)
		if err != nil {
			t.Fatalf("Render(%v, %v) error = %v", tt.dur, tt.rate, err)
		}
		if b.Len() != tt.want {
			t.Fatalf("Render(%v, %v) len = %d, want %d", tt.dur, tt.rate, b.Len(), tt.want)
		}
	}
}

func TestRenderValidation(t *testing.T) {
	tests := []struct {
		name  string
		dur   float64
		start float64
		rate  float64
	}{
		{"zero rate", 1, 0, 0},
		{"negative rate", 1, 0, -44100},
		{"negative duration", -1, 0, 44100},
		{"nan duration", math.NaN(), 0, 44100},
		{"inf start", 1, math.Inf(1), 44100},
		{"unresolvable start", 0.01, 1e12, 44100},
		{"unresolvable negative start", 0.01, -1e12, 44100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(NewSine(1, 1), tt.dur, tt.start, tt.rate)
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("Render() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestRenderLargeStart(t *testing.T) {
	_, err := Render(NewSine(220, 1), 0.01, 1e12, 44100)
	if err == nil || !strings.Contains(err.Error(), "too large to resolve") {
		t.Fatalf("Render(start 1e12) error = %v, want resolution error", err)
	}

	b, err := Render(NewSine(220, 1), 0.01, 1e6, 44100)
	if err != nil {
		t.Fatalf("Render(start 1e6) error = %v", err)
	}
	if b.Len() != 441 {
		t.Fatalf("Len() = %d, want 441", b.Len())
	}
}

func TestRenderer(t *testing.T) {
	r := NewRenderer()
	if r.Config().SampleRate != 44100 {
		t.Fatalf("default sample rate = %v, want 44100", r.Config().SampleRate)
	}

	r = NewRenderer(core.WithSampleRate(8000))
	b, err := r.Render(NewSquare(100, 1), 0.25, 0)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b.Len() != 2000 || b.SampleRate() != 8000 {
		t.Fatalf("buffer = (%d, %v), want (2000, 8000)", b.Len(), b.SampleRate())
	}
}
