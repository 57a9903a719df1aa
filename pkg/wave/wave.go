// Package wave synthesizes the audio buffers used by a looming session:
// the looped background noise and the one-shot rising ("looming") stimulus.
//
// All buffers are mono float32 at the session sample rate, normalized to
// [-1, 1]. Buffers are produced once at session start and read-only after.
package wave

import (
	"math"
	"math/rand/v2"
)

// DefaultSampleRate is the session sample rate in Hz.
const DefaultSampleRate = 44100

const (
	// noiseMean and noiseSigma parameterize the gaussian carrier noise.
	noiseMean  = 0.5
	noiseSigma = 0.1

	// rampSeconds is the fade length applied to each end of the background
	// buffer so the loop splice has no click.
	rampSeconds = 0.25

	// loomRepeats is the number of one-second rise/plateau periods in the
	// stimulus.
	loomRepeats = 10

	// riseFraction is the part of each stimulus period spent rising from the
	// base amplitude to the peak; the remainder plateaus back at base.
	riseFraction = 0.4
)

// StimulusSeconds is the total stimulus duration.
const StimulusSeconds = loomRepeats

// Hann returns an n-point Hann window.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// carrier returns n samples of gaussian noise around noiseMean.
func carrier(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = noiseMean + noiseSigma*rand.NormFloat64()
	}
	return out
}

func clamp(v float64) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return float32(v)
	}
}

// Noise returns seconds of gaussian noise scaled to the given amplitude.
func Noise(amplitude, seconds float64, fs int) []float32 {
	n := int(seconds * float64(fs))
	noise := carrier(n)
	out := make([]float32, n)
	for i := range out {
		out[i] = clamp(amplitude * noise[i])
	}
	return out
}

// Background returns the looped background buffer: amplitude-scaled noise
// with a half-Hann fade-in and fade-out over rampSeconds at each end, so
// back-to-back repeats splice without an audible discontinuity.
func Background(amplitude, seconds float64, fs int) []float32 {
	out := Noise(amplitude, seconds, fs)
	ramp := int(rampSeconds * float64(fs))
	if 2*ramp > len(out) {
		ramp = len(out) / 2
	}
	// A full window of 2*ramp points; first half rises 0->1, second half
	// mirrors back down.
	win := Hann(2 * ramp)
	for i := 0; i < ramp; i++ {
		out[i] = float32(float64(out[i]) * win[i])
		out[len(out)-1-i] = float32(float64(out[len(out)-1-i]) * win[i])
	}
	return out
}

// Envelope returns one stimulus period of envelope values: a linear rise from
// base to peak over the first riseFraction of a second, then a plateau back
// at base for the rest. The period is exactly fs samples.
func Envelope(base, peak float64, fs int) []float64 {
	rise := int(riseFraction * float64(fs))
	env := make([]float64, fs)
	for i := 0; i < rise; i++ {
		env[i] = base + (peak-base)*float64(i)/float64(rise-1)
	}
	for i := rise; i < fs; i++ {
		env[i] = base
	}
	return env
}

// Looming returns the one-shot stimulus buffer: loomRepeats tiled envelope
// periods modulated by gaussian noise. Total length is exactly
// loomRepeats * fs samples (~10 s at the default rate).
func Looming(base, peak float64, fs int) []float32 {
	env := Envelope(base, peak, fs)
	n := loomRepeats * fs
	noise := carrier(n)
	out := make([]float32, n)
	for i := range out {
		out[i] = clamp(env[i%fs] * noise[i])
	}
	return out
}
