// Package record persists the per-frame centroid trace of a session as an
// append-only CSV file: one row per successfully tracked frame.
package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Recorder writes centroid records to a CSV file. It is not safe for
// concurrent use; the tracking loop is its only writer.
type Recorder struct {
	f *os.File
	w *csv.Writer
}

// Open creates (or truncates) the record file at path.
func Open(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating record file: %w", err)
	}
	return &Recorder{
		f: f,
		w: csv.NewWriter(f),
	}, nil
}

// Record appends one row: centroid x, centroid y, containment state.
func (r *Recorder) Record(x, y int, inside bool) error {
	row := []string{
		strconv.Itoa(x),
		strconv.Itoa(y),
		strconv.FormatBool(inside),
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (r *Recorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.f.Close()
		return fmt.Errorf("flushing records: %w", err)
	}
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("closing record file: %w", err)
	}
	return nil
}
