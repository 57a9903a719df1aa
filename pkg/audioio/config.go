// Package audioio provides audio playback to an output device.
//
// Backends:
//   - miniaudio - production playback via the gen2brain/malgo bindings
//   - mock - CI/testing without hardware
//
// Each Sink owns an exclusive device handle. Writes are blocking: a Write
// returns once the device has consumed the buffer, which makes the write
// itself the caller's timing source.
package audioio

import "fmt"

// Backend represents the audio backend type.
type Backend string

const (
	// BackendAuto selects the best available backend.
	BackendAuto Backend = "auto"
	// BackendMiniaudio plays through a miniaudio device.
	BackendMiniaudio Backend = "miniaudio"
	// BackendMock uses a mock implementation for testing.
	BackendMock Backend = "mock"
)

// Config holds audio output configuration.
type Config struct {
	// Backend specifies which audio backend to use.
	// Default: "auto"
	Backend Backend `yaml:"backend" json:"backend"`

	// SampleRate is the audio sample rate in Hz.
	// Default: 44100
	SampleRate int `yaml:"sample_rate" json:"sample_rate"`

	// Channels is the number of audio channels.
	// Default: 1 (mono)
	Channels int `yaml:"channels" json:"channels"`

	// PeriodFrames is the device period size in frames.
	// Default: 1024
	PeriodFrames int `yaml:"period_frames" json:"period_frames"`

	// Device is the platform-specific device identifier.
	// Empty selects the system default output.
	Device string `yaml:"device" json:"device"`
}

// DefaultConfig returns a Config with the session defaults.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendAuto,
		SampleRate:   44100,
		Channels:     1,
		PeriodFrames: 1024,
		Device:       "",
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if c.PeriodFrames <= 0 {
		return fmt.Errorf("period_frames must be positive, got %d", c.PeriodFrames)
	}
	return nil
}
