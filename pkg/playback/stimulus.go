package playback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blivingstone/go-looming/pkg/audioio"
)

// Stimulus blocks on the trigger and plays the one-shot looming buffer to
// completion each time it fires. It takes ownership of the sink and releases
// it on exit.
//
// Known limitation, kept deliberately: playback is not interruptible and the
// trigger is a single slot that is cleared when playback finishes. A trigger
// raised while a playback is in progress is dropped, not queued; region
// crossings during the ~10s stimulus produce no second stimulus.
type Stimulus struct {
	sink    audioio.Sink
	buf     []float32
	trigger *Trigger
	logger  *slog.Logger
}

// NewStimulus creates the stimulus worker. buf is read-only from here on.
func NewStimulus(sink audioio.Sink, buf []float32, trigger *Trigger, logger *slog.Logger) *Stimulus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stimulus{
		sink:    sink,
		buf:     buf,
		trigger: trigger,
		logger:  logger,
	}
}

// Run waits for trigger raises until ctx is cancelled, then releases the
// device. Each playback runs to completion: the write deliberately ignores
// cancellation so an in-flight stimulus is never cut short.
func (s *Stimulus) Run(ctx context.Context) error {
	if err := s.sink.Start(ctx); err != nil {
		return fmt.Errorf("starting stimulus sink: %w", err)
	}
	defer s.sink.Close()

	s.logger.Info("stimulus worker waiting",
		"device", s.sink.Name(),
		"buffer_samples", len(s.buf),
	)

	played := 0
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stimulus worker stopped", "played", played)
			return nil

		case <-s.trigger.Fired():
			s.logger.Debug("stimulus triggered")
			err := s.sink.Write(context.WithoutCancel(ctx), s.buf)
			// Raises that arrived mid-playback are dropped.
			s.trigger.Clear()
			if err != nil {
				return fmt.Errorf("stimulus write: %w", err)
			}
			played++
			s.logger.Info("stimulus completed", "played", played)

			if ctx.Err() != nil {
				s.logger.Info("stimulus worker stopped", "played", played)
				return nil
			}
		}
	}
}
