package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"negative period", func(c *Config) { c.PeriodFrames = -1 }},
		{"zero background", func(c *Config) { c.BackgroundSeconds = 0 }},
		{"amplitude above one", func(c *Config) { c.BaseAmplitude = 1.5 }},
		{"negative amplitude", func(c *Config) { c.PeakAmplitude = -0.1 }},
		{"zero join timeout", func(c *Config) { c.JoinTimeout = 0 }},
		{"empty video path", func(c *Config) { c.OutputVideo = "" }},
		{"empty csv path", func(c *Config) { c.OutputCSV = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error, got nil")
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "looming.yaml")
	body := "sample_rate: 48000\nbase_amplitude: 0.3\njoin_timeout: 5s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate: got %d, want 48000", cfg.SampleRate)
	}
	if cfg.BaseAmplitude != 0.3 {
		t.Errorf("BaseAmplitude: got %v, want 0.3", cfg.BaseAmplitude)
	}
	if cfg.JoinTimeout.Std() != 5*time.Second {
		t.Errorf("JoinTimeout: got %v, want 5s", cfg.JoinTimeout)
	}
	// Untouched fields keep defaults
	if cfg.OutputVideo != "output.mp4" {
		t.Errorf("OutputVideo: got %q, want output.mp4", cfg.OutputVideo)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Error("session IDs should be unique")
	}
}
