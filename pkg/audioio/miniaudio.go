package audioio

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

// miniaudioSink plays through a miniaudio device. The device pulls samples
// from the pending buffer in its data callback; Write hands over a buffer and
// blocks on a condition variable until the callback has drained it.
type miniaudioSink struct {
	cfg    Config
	logger *slog.Logger

	actx *malgo.AllocatedContext
	dev  *malgo.Device

	mu      sync.Mutex
	cond    *sync.Cond
	pending []float32
	pos     int
	running bool
	closed  bool

	chunksWritten  atomic.Int64
	samplesWritten atomic.Int64
}

func newMiniaudioSink(cfg Config, logger *slog.Logger) (*miniaudioSink, error) {
	actx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("miniaudio context: %w", err)
	}

	s := &miniaudioSink{
		cfg:    cfg,
		logger: logger,
		actx:   actx,
	}
	s.cond = sync.NewCond(&s.mu)

	logger.Info("miniaudio sink created",
		"sample_rate", cfg.SampleRate,
		"channels", cfg.Channels,
		"period_frames", cfg.PeriodFrames,
	)

	return s, nil
}

// Start opens the playback device. The device runs from here on, emitting
// silence whenever no buffer is pending.
func (s *miniaudioSink) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if s.running {
		return nil
	}

	devCfg := malgo.DefaultDeviceConfig(malgo.Playback)
	devCfg.Playback.Format = malgo.FormatF32
	devCfg.Playback.Channels = uint32(s.cfg.Channels)
	devCfg.SampleRate = uint32(s.cfg.SampleRate)
	devCfg.PeriodSizeInFrames = uint32(s.cfg.PeriodFrames)

	if s.cfg.Device != "" {
		id, err := s.findDevice(s.cfg.Device)
		if err != nil {
			return err
		}
		devCfg.Playback.DeviceID = id.Pointer()
	}

	callbacks := malgo.DeviceCallbacks{
		Data: s.fill,
	}

	dev, err := malgo.InitDevice(s.actx.Context, devCfg, callbacks)
	if err != nil {
		return fmt.Errorf("miniaudio device init: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		return fmt.Errorf("miniaudio device start: %w", err)
	}

	s.dev = dev
	s.running = true
	return nil
}

// findDevice matches a playback device by case-insensitive name fragment.
func (s *miniaudioSink) findDevice(name string) (malgo.DeviceID, error) {
	var id malgo.DeviceID
	infos, err := s.actx.Devices(malgo.Playback)
	if err != nil {
		return id, fmt.Errorf("enumerating playback devices: %w", err)
	}
	for _, info := range infos {
		if strings.Contains(strings.ToLower(info.Name()), strings.ToLower(name)) {
			return info.ID, nil
		}
	}
	return id, fmt.Errorf("no playback device matching %q", name)
}

// fill is the device data callback. It copies pending samples into the
// device buffer and zero-fills the rest; it must never block.
func (s *miniaudioSink) fill(out, _ []byte, frameCount uint32) {
	want := int(frameCount) * s.cfg.Channels

	s.mu.Lock()
	n := 0
	if s.pos < len(s.pending) {
		n = len(s.pending) - s.pos
		if n > want {
			n = want
		}
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s.pending[s.pos+i]))
		}
		s.pos += n
		s.samplesWritten.Add(int64(n))
		if s.pos >= len(s.pending) {
			s.pending = nil
			s.pos = 0
			s.cond.Broadcast()
		}
	}
	s.mu.Unlock()

	for i := n * 4; i < len(out); i++ {
		out[i] = 0
	}
}

// Write blocks until the device has consumed samples, or ctx is cancelled.
func (s *miniaudioSink) Write(ctx context.Context, samples []float32) error {
	if len(samples) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if !s.running {
		return ErrSinkNotStarted
	}

	// One in-flight buffer at a time.
	for s.pending != nil {
		if err := s.waitLocked(ctx); err != nil {
			return err
		}
	}

	s.pending = samples
	s.pos = 0

	for s.pending != nil {
		if s.closed || !s.running {
			s.pending = nil
			s.pos = 0
			return ErrSinkClosed
		}
		if err := s.waitLocked(ctx); err != nil {
			// Abandon the remainder; the device falls back to silence.
			s.pending = nil
			s.pos = 0
			return err
		}
	}

	if s.closed || !s.running {
		return ErrSinkClosed
	}

	s.chunksWritten.Add(1)
	return nil
}

// waitLocked waits on the condition variable with ctx cancellation.
// Must be called with s.mu held; returns with s.mu held.
func (s *miniaudioSink) waitLocked(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	woke := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		case <-woke:
		}
	}()

	s.cond.Wait()
	close(woke)

	return ctx.Err()
}

// Stop halts playback and wakes any blocked writer.
func (s *miniaudioSink) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.pending = nil
	s.pos = 0
	dev := s.dev
	s.dev = nil
	s.cond.Broadcast()
	s.mu.Unlock()

	if dev != nil {
		if err := dev.Stop(); err != nil {
			s.logger.Warn("miniaudio device stop", "error", err)
		}
		dev.Uninit()
	}
	return nil
}

// Config returns the audio configuration.
func (s *miniaudioSink) Config() Config {
	return s.cfg
}

// Name returns "miniaudio".
func (s *miniaudioSink) Name() string {
	return "miniaudio"
}

// Close stops playback and releases the device and context handles.
func (s *miniaudioSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Stop()

	if err := s.actx.Uninit(); err != nil {
		s.logger.Warn("miniaudio context uninit", "error", err)
	}
	s.actx.Free()

	s.logger.Info("miniaudio sink closed",
		"chunks_written", s.chunksWritten.Load(),
		"samples_written", s.samplesWritten.Load(),
	)
	return nil
}

// Stats returns sink statistics.
func (s *miniaudioSink) Stats() SinkStats {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return SinkStats{
		ChunksWritten:  s.chunksWritten.Load(),
		SamplesWritten: s.samplesWritten.Load(),
		Running:        running,
		Backend:        "miniaudio",
	}
}

// Ensure miniaudioSink implements SinkWithStats.
var _ SinkWithStats = (*miniaudioSink)(nil)
