// Package config holds the session configuration for go-looming commands.
//
// A session is configured once at startup and passed by value into the
// packages that need it; there is no ambient mutable state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "2s"-style values parse from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	td, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(td)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all tunable parameters for a looming session.
type Config struct {
	// Video
	OutputVideo string `yaml:"output_video" json:"output_video"` // annotated output video path
	OutputCSV   string `yaml:"output_csv" json:"output_csv"`     // centroid record path

	// Audio synthesis
	SampleRate        int     `yaml:"sample_rate" json:"sample_rate"`
	PeriodFrames      int     `yaml:"period_frames" json:"period_frames"`             // device period size
	BackgroundSeconds float64 `yaml:"background_seconds" json:"background_seconds"`   // looped buffer length
	CalibrateSeconds  float64 `yaml:"calibrate_seconds" json:"calibrate_seconds"`     // test tone length
	BaseAmplitude     float64 `yaml:"base_amplitude" json:"base_amplitude"`           // calibration start, background
	PeakAmplitude     float64 `yaml:"peak_amplitude" json:"peak_amplitude"`           // calibration start, stimulus

	// Shutdown
	JoinTimeout Duration `yaml:"join_timeout" json:"join_timeout"` // bounded wait for audio workers

	// Logging
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the recommended session configuration.
func Default() Config {
	return Config{
		OutputVideo: "output.mp4",
		OutputCSV:   "centroid.csv",

		SampleRate:        44100,
		PeriodFrames:      1024,
		BackgroundSeconds: 50,
		CalibrateSeconds:  5,
		BaseAmplitude:     0.2,
		PeakAmplitude:     0.7,

		JoinTimeout: Duration(2 * time.Second),

		LogLevel: "info",
	}
}

// Load overlays a YAML file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.PeriodFrames <= 0 {
		return fmt.Errorf("period_frames must be positive, got %d", c.PeriodFrames)
	}
	if c.BackgroundSeconds <= 0 {
		return fmt.Errorf("background_seconds must be positive, got %v", c.BackgroundSeconds)
	}
	if c.CalibrateSeconds <= 0 {
		return fmt.Errorf("calibrate_seconds must be positive, got %v", c.CalibrateSeconds)
	}
	if c.BaseAmplitude < 0 || c.BaseAmplitude > 1 {
		return fmt.Errorf("base_amplitude must be in [0,1], got %v", c.BaseAmplitude)
	}
	if c.PeakAmplitude < 0 || c.PeakAmplitude > 1 {
		return fmt.Errorf("peak_amplitude must be in [0,1], got %v", c.PeakAmplitude)
	}
	if c.JoinTimeout <= 0 {
		return fmt.Errorf("join_timeout must be positive, got %v", c.JoinTimeout.Std())
	}
	if c.OutputVideo == "" {
		return fmt.Errorf("output_video must not be empty")
	}
	if c.OutputCSV == "" {
		return fmt.Errorf("output_csv must not be empty")
	}
	return nil
}

// NewSessionID returns a fresh identifier for one tracking session.
// It tags log lines so recordings from the same rig can be told apart.
func NewSessionID() string {
	return uuid.NewString()
}
