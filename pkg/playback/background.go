package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blivingstone/go-looming/pkg/audioio"
)

// Background loops one buffer to its own output device until the session
// ends. It takes ownership of the sink and releases it on exit.
type Background struct {
	sink   audioio.Sink
	buf    []float32
	logger *slog.Logger
}

// NewBackground creates the background worker. buf is read-only from here on.
func NewBackground(sink audioio.Sink, buf []float32, logger *slog.Logger) *Background {
	if logger == nil {
		logger = slog.Default()
	}
	return &Background{
		sink:   sink,
		buf:    buf,
		logger: logger,
	}
}

// Run plays the buffer back-to-back until ctx is cancelled, then releases
// the device. Cancellation interrupts an in-flight write at the next device
// period, so termination is prompt even for long buffers.
func (b *Background) Run(ctx context.Context) error {
	if err := b.sink.Start(ctx); err != nil {
		return fmt.Errorf("starting background sink: %w", err)
	}
	defer b.sink.Close()

	b.logger.Info("background stream started",
		"device", b.sink.Name(),
		"buffer_samples", len(b.buf),
	)

	loops := 0
	for {
		if ctx.Err() != nil {
			break
		}
		err := b.sink.Write(ctx, b.buf)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if err != nil {
			return fmt.Errorf("background write: %w", err)
		}
		loops++
	}

	b.logger.Info("background stream stopped", "loops_completed", loops)
	return nil
}
