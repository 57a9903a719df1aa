package calibration

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/blivingstone/go-looming/pkg/audioio"
)

func newSink(t *testing.T) *audioio.MockSink {
	t.Helper()
	cfg := audioio.DefaultConfig()
	cfg.SampleRate = 8000 // keep test buffers small
	sink := audioio.NewMockSink(cfg, nil)
	if err := sink.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sink.Close() })
	return sink
}

func run(t *testing.T, sink *audioio.MockSink, input string, initial float64) float64 {
	t.Helper()
	c := New(sink, strings.NewReader(input), io.Discard, 0.1, nil)
	got, err := c.Run(context.Background(), "test", initial)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return got
}

func TestRunAcceptsReplacementsUntilConfirmed(t *testing.T) {
	sink := newSink(t)

	// Two adjustments, then junk confirms the last one.
	got := run(t, sink, "0.5\n0.8\nxyz\n", 0.2)
	if got != 0.8 {
		t.Errorf("amplitude: got %v, want 0.8", got)
	}
	// Plays at 0.2, 0.5 and 0.8 before the junk input ends the loop.
	if n := sink.WriteCount(); n != 3 {
		t.Errorf("playbacks: got %d, want 3", n)
	}
}

func TestRunEmptyInputConfirmsInitial(t *testing.T) {
	sink := newSink(t)

	got := run(t, sink, "\n", 0.2)
	if got != 0.2 {
		t.Errorf("amplitude: got %v, want initial 0.2", got)
	}
	if n := sink.WriteCount(); n != 1 {
		t.Errorf("playbacks: got %d, want 1", n)
	}
}

func TestRunEOFConfirms(t *testing.T) {
	sink := newSink(t)

	if got := run(t, sink, "", 0.7); got != 0.7 {
		t.Errorf("amplitude: got %v, want 0.7", got)
	}
}

func TestRunOutOfRangeConfirmsLastGood(t *testing.T) {
	sink := newSink(t)

	got := run(t, sink, "0.4\n1.5\n", 0.2)
	if got != 0.4 {
		t.Errorf("amplitude: got %v, want 0.4", got)
	}
}

func TestRunNegativeRejected(t *testing.T) {
	sink := newSink(t)

	if got := run(t, sink, "-0.1\n", 0.3); got != 0.3 {
		t.Errorf("amplitude: got %v, want 0.3", got)
	}
}

func TestParseAmplitude(t *testing.T) {
	tests := []struct {
		in string
		v  float64
		ok bool
	}{
		{"0.5", 0.5, true},
		{"0", 0, true},
		{"1", 1, true},
		{" 0.25 ", 0.25, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.01", 0, false},
		{"-0.5", 0, false},
	}

	for _, tt := range tests {
		v, ok := parseAmplitude(tt.in)
		if ok != tt.ok || (ok && v != tt.v) {
			t.Errorf("parseAmplitude(%q) = %v, %v; want %v, %v", tt.in, v, ok, tt.v, tt.ok)
		}
	}
}
