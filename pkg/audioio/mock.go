package audioio

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// MockSink is a mock audio sink for testing. It records every buffer written
// and can simulate playback time so worker timing can be exercised.
type MockSink struct {
	cfg    Config
	logger *slog.Logger

	// writeDelay, when non-zero, is how long each Write blocks to simulate
	// the device consuming the buffer.
	writeDelay time.Duration

	mu      sync.Mutex
	running bool
	closed  bool
	writes  [][]float32

	chunksWritten  atomic.Int64
	samplesWritten atomic.Int64
	rejected       atomic.Int64
}

// MockSinkOption configures a MockSink.
type MockSinkOption func(*MockSink)

// WithWriteDelay makes each Write block for d, simulating playback time.
func WithWriteDelay(d time.Duration) MockSinkOption {
	return func(m *MockSink) {
		m.writeDelay = d
	}
}

// NewMockSink creates a new mock audio sink.
func NewMockSink(cfg Config, logger *slog.Logger, opts ...MockSinkOption) *MockSink {
	if logger == nil {
		logger = slog.Default()
	}

	m := &MockSink{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins accepting audio.
func (m *MockSink) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrSinkClosed
	}
	m.running = true
	return nil
}

// Stop halts audio acceptance.
func (m *MockSink) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.running = false
	return nil
}

// Write records the buffer, optionally blocking for the configured delay.
func (m *MockSink) Write(ctx context.Context, samples []float32) error {
	m.mu.Lock()
	if m.closed || !m.running {
		m.mu.Unlock()
		m.rejected.Add(1)
		if m.closed {
			return ErrSinkClosed
		}
		return ErrSinkNotStarted
	}
	buf := make([]float32, len(samples))
	copy(buf, samples)
	m.writes = append(m.writes, buf)
	delay := m.writeDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	m.chunksWritten.Add(1)
	m.samplesWritten.Add(int64(len(samples)))
	return nil
}

// Writes returns copies of all buffers written so far.
func (m *MockSink) Writes() [][]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]float32, len(m.writes))
	copy(out, m.writes)
	return out
}

// WriteCount returns the number of buffers recorded.
func (m *MockSink) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

// Rejected returns the number of writes refused after Stop or Close.
func (m *MockSink) Rejected() int64 {
	return m.rejected.Load()
}

// Config returns the audio configuration.
func (m *MockSink) Config() Config {
	return m.cfg
}

// Name returns "mock".
func (m *MockSink) Name() string {
	return "mock"
}

// Close releases resources.
func (m *MockSink) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.running = false
	m.mu.Unlock()
	return nil
}

// Closed reports whether Close has been called.
func (m *MockSink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Stats returns sink statistics.
func (m *MockSink) Stats() SinkStats {
	m.mu.Lock()
	running := m.running
	m.mu.Unlock()

	return SinkStats{
		ChunksWritten:  m.chunksWritten.Load(),
		SamplesWritten: m.samplesWritten.Load(),
		Running:        running,
		Backend:        "mock",
	}
}

// Ensure MockSink implements SinkWithStats.
var _ SinkWithStats = (*MockSink)(nil)
