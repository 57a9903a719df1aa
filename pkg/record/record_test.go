package record

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecorderWritesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centroid.csv")

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := r.Record(320, 240, false); err != nil {
		t.Fatal(err)
	}
	if err := r.Record(150, 90, true); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := "320,240,false\n150,90,true\n"
	if string(data) != want {
		t.Errorf("file contents:\ngot  %q\nwant %q", string(data), want)
	}
}

func TestRecorderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centroid.csv")

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", string(data))
	}
}

func TestOpenBadPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "centroid.csv")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
