package wave

import (
	"math"
	"testing"
)

const fs = DefaultSampleRate

func TestNoiseLengthAndBounds(t *testing.T) {
	buf := Noise(0.5, 2, fs)
	if got, want := len(buf), 2*fs; got != want {
		t.Fatalf("length: got %d, want %d", got, want)
	}
	for i, v := range buf {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of [-1,1]: %v", i, v)
		}
	}
}

func TestBackgroundSpliceContinuity(t *testing.T) {
	const eps = 1e-3

	buf := Background(0.4, 5, fs)
	if len(buf) != 5*fs {
		t.Fatalf("length: got %d, want %d", len(buf), 5*fs)
	}

	// Both ends carry the leading Hann value (zero), so concatenating the
	// buffer with itself has no discontinuity at the splice point.
	if math.Abs(float64(buf[0])) > eps {
		t.Errorf("first sample not window-scaled to zero: %v", buf[0])
	}
	if math.Abs(float64(buf[len(buf)-1])) > eps {
		t.Errorf("last sample not window-scaled to zero: %v", buf[len(buf)-1])
	}
	if d := math.Abs(float64(buf[0]) - float64(buf[len(buf)-1])); d > eps {
		t.Errorf("splice discontinuity %v exceeds epsilon", d)
	}
}

func TestBackgroundRampIsMonotoneInScale(t *testing.T) {
	// The fade-in must not exceed the unfaded amplitude anywhere.
	amp := 0.3
	buf := Background(amp, 2, fs)
	limit := float32(amp*(noiseMean+6*noiseSigma)) + 1e-6
	ramp := int(rampSeconds * float64(fs))
	for i := 0; i < ramp; i++ {
		if buf[i] > limit || buf[i] < -limit {
			t.Fatalf("ramp sample %d beyond plausible envelope: %v", i, buf[i])
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	base, peak := 0.2, 0.7
	env := Envelope(base, peak, fs)

	if len(env) != fs {
		t.Fatalf("period length: got %d, want %d", len(env), fs)
	}

	rise := int(0.4 * float64(fs))

	// Monotone rise from base to peak over the first 0.4*fs samples.
	if env[0] != base {
		t.Errorf("rise start: got %v, want %v", env[0], base)
	}
	for i := 1; i < rise; i++ {
		if env[i] < env[i-1] {
			t.Fatalf("envelope not monotone at %d: %v < %v", i, env[i], env[i-1])
		}
	}
	if math.Abs(env[rise-1]-peak) > 1e-9 {
		t.Errorf("rise end: got %v, want %v", env[rise-1], peak)
	}

	// Plateau at base for the remaining 0.6*fs samples.
	for i := rise; i < fs; i++ {
		if env[i] != base {
			t.Fatalf("plateau sample %d: got %v, want %v", i, env[i], base)
		}
	}
}

func TestLoomingLength(t *testing.T) {
	buf := Looming(0.2, 0.7, fs)
	if got, want := len(buf), 10*fs; got != want {
		t.Fatalf("stimulus length: got %d, want %d", got, want)
	}
}

func TestLoomingWithinBounds(t *testing.T) {
	buf := Looming(0.5, 1.0, fs)
	for i, v := range buf {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of [-1,1]: %v", i, v)
		}
	}
}

func TestHannEndpoints(t *testing.T) {
	w := Hann(1024)
	if w[0] != 0 || w[len(w)-1] != 0 {
		t.Errorf("Hann endpoints: got %v, %v, want 0, 0", w[0], w[len(w)-1])
	}
	mid := w[len(w)/2]
	if math.Abs(mid-1) > 1e-4 {
		t.Errorf("Hann midpoint: got %v, want ~1", mid)
	}
}
