package video

import (
	"path/filepath"
	"testing"
	"time"
)

func TestTimestampFromFPS(t *testing.T) {
	s := &Stream{fps: 25, index: 50}
	if got, want := s.Timestamp(), 2*time.Second; got != want {
		t.Errorf("Timestamp: got %v, want %v", got, want)
	}
}

func TestTimestampUnknownFPS(t *testing.T) {
	// Some capture devices report no frame rate.
	s := &Stream{fps: 0, index: 100}
	if got := s.Timestamp(); got != 0 {
		t.Errorf("Timestamp with unknown fps: got %v, want 0", got)
	}
}

func TestOpenStreamMissingFile(t *testing.T) {
	if _, err := OpenStream(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing video file")
	}
}
