package audioio

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrSinkClosed is returned when using a sink after Close.
	ErrSinkClosed = errors.New("audio sink closed")

	// ErrSinkNotStarted is returned when writing before Start.
	ErrSinkNotStarted = errors.New("audio sink not started")
)

// Sink plays audio to an output device.
type Sink interface {
	// Start opens the output device and begins playback.
	// The device emits silence until samples are written.
	Start(ctx context.Context) error

	// Write plays a mono float32 buffer, blocking until the device has
	// consumed it. Cancelling ctx abandons the remainder of the buffer and
	// returns ctx.Err(); samples already handed to the device still play out.
	Write(ctx context.Context, samples []float32) error

	// Stop halts playback. It is safe to call Stop multiple times.
	Stop() error

	// Config returns the current audio configuration.
	Config() Config

	// Name returns the backend name (e.g., "miniaudio", "mock").
	Name() string

	// Close releases the device handle.
	// After Close, the sink cannot be restarted.
	io.Closer
}

// SinkStats contains statistics about an audio sink.
type SinkStats struct {
	// ChunksWritten is the total number of Write calls completed.
	ChunksWritten int64 `json:"chunks_written"`

	// SamplesWritten is the total number of samples consumed by the device.
	SamplesWritten int64 `json:"samples_written"`

	// Running indicates if the sink is currently playing.
	Running bool `json:"running"`

	// Backend is the name of the audio backend.
	Backend string `json:"backend"`
}

// SinkWithStats extends Sink with statistics.
type SinkWithStats interface {
	Sink
	Stats() SinkStats
}
