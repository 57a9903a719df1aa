// Package tracking drives the per-frame perception loop of a looming session:
// advance the tracker, test the centroid against the trigger region, detect
// outside->inside transitions and raise the stimulus trigger.
//
// The loop is single-threaded and never blocks on audio; it only ever sets
// signals. Video, tracker, persistence and rendering are injected interfaces
// so the loop runs identically against hardware or test fakes.
package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/blivingstone/go-looming/pkg/playback"
	"github.com/blivingstone/go-looming/pkg/region"
)

// ErrNoRegion is returned by Run when no trigger region has been supplied.
var ErrNoRegion = errors.New("trigger region not set")

// State is the lifecycle phase of the loop.
type State int32

const (
	// StateAwaitingRegions means the trigger region has not been supplied.
	StateAwaitingRegions State = iota
	// StateRunning means per-frame processing is active.
	StateRunning
	// StateStopping means a stop was requested and teardown has begun.
	StateStopping
	// StateTerminated means the loop has exited.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingRegions:
		return "awaiting_regions"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Box is an axis-aligned bounding box in pixel coordinates.
type Box struct {
	X int
	Y int
	W int
	H int
}

// Center returns the centroid of the box.
func (b Box) Center() (x, y int) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Source yields video frames sequentially. Implementations hold the current
// frame; collaborators operate on it implicitly.
type Source interface {
	// Next advances to the next frame. It reports false when the source is
	// exhausted or a frame read fails, which ends the session gracefully.
	Next() bool
}

// Tracker follows one object across the source's frames.
type Tracker interface {
	// Update advances the tracker over the current frame. ok is false when
	// tracking failed for this frame; failure is non-fatal and the tracker
	// may re-acquire on a later frame.
	Update() (box Box, ok bool)
}

// Recorder persists one row per successfully tracked frame.
type Recorder interface {
	Record(x, y int, inside bool) error
}

// Renderer draws the per-frame overlay and presents it. tracked is false on
// tracker failure, in which case centroid and inside are meaningless.
type Renderer interface {
	// Render reports quit=true when the operator requested an abort.
	Render(centroid region.Point, tracked, inside bool) (quit bool, err error)
}

// Stats summarizes one session's loop activity.
type Stats struct {
	Frames   int // frames read from the source
	Tracked  int // frames with a successful tracker update
	Lost     int // frames where tracking failed
	Triggers int // rising edges raised
}

// Loop is the per-frame driver. Construct with New, supply the trigger
// region once, then Run.
type Loop struct {
	src     Source
	trk     Tracker
	trigger *playback.Trigger
	rec     Recorder
	render  Renderer
	logger  *slog.Logger

	regionSet bool
	region    region.Rect
	edge      region.EdgeDetector

	// OnStop, if set, is invoked once when the loop begins stopping.
	// The session wires the sticky end signal here.
	OnStop func()

	state atomic.Int32
	stats Stats
}

// Option configures a Loop.
type Option func(*Loop)

// WithRecorder attaches a persistence collaborator.
func WithRecorder(r Recorder) Option {
	return func(l *Loop) { l.rec = r }
}

// WithRenderer attaches a visualization collaborator.
func WithRenderer(r Renderer) Option {
	return func(l *Loop) { l.render = r }
}

// WithLogger sets the loop logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// New creates a loop in the awaiting-regions state.
func New(src Source, trk Tracker, trigger *playback.Trigger, opts ...Option) *Loop {
	l := &Loop{
		src:     src,
		trk:     trk,
		trigger: trigger,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetTriggerRegion supplies the fixed trigger region. Write-once: later calls
// are ignored once the loop is running.
func (l *Loop) SetTriggerRegion(r region.Rect) {
	if l.State() != StateAwaitingRegions {
		return
	}
	l.region = r
	l.regionSet = true
}

// State returns the current lifecycle phase.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats returns the loop counters. Stable once Run has returned.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run processes frames until the source is exhausted, the operator quits, or
// ctx is cancelled. The previous containment state starts as outside, so the
// first tracked frame raises a trigger only if it is immediately inside.
func (l *Loop) Run(ctx context.Context) (Stats, error) {
	if !l.regionSet {
		return l.stats, ErrNoRegion
	}

	l.state.Store(int32(StateRunning))
	l.logger.Info("tracking loop running", "region", l.region)

	for {
		if ctx.Err() != nil {
			l.logger.Info("tracking loop cancelled")
			break
		}
		if !l.src.Next() {
			l.logger.Info("video source exhausted")
			break
		}
		l.stats.Frames++

		if quit := l.step(); quit {
			l.logger.Info("operator quit requested")
			break
		}
	}

	l.beginStop()
	l.state.Store(int32(StateTerminated))

	l.logger.Info("tracking loop finished",
		"frames", l.stats.Frames,
		"tracked", l.stats.Tracked,
		"lost", l.stats.Lost,
		"triggers", l.stats.Triggers,
	)
	return l.stats, nil
}

// step processes the current frame and reports whether the operator quit.
func (l *Loop) step() bool {
	box, ok := l.trk.Update()
	if !ok {
		// Tracking failure skips containment and edge logic for this frame
		// only; the loop keeps going so the tracker can re-acquire.
		l.stats.Lost++
		return l.present(region.Point{}, false, false)
	}
	l.stats.Tracked++

	cx, cy := box.Center()
	p := region.Point{X: float64(cx), Y: float64(cy)}
	inside := l.region.Contains(p)

	if rising := l.edge.Observe(inside); rising {
		l.trigger.Raise()
		l.stats.Triggers++
		l.logger.Debug("edge event", "x", cx, "y", cy)
	}

	if l.rec != nil {
		if err := l.rec.Record(cx, cy, inside); err != nil {
			l.logger.Warn("record failed", "error", err)
		}
	}

	return l.present(p, true, inside)
}

func (l *Loop) present(p region.Point, tracked, inside bool) bool {
	if l.render == nil {
		return false
	}
	quit, err := l.render.Render(p, tracked, inside)
	if err != nil {
		l.logger.Warn("render failed", "error", err)
	}
	return quit
}

// beginStop marks the stopping state and fires the stop hook once.
func (l *Loop) beginStop() {
	l.state.Store(int32(StateStopping))
	if l.OnStop != nil {
		l.OnStop()
		l.OnStop = nil
	}
}
