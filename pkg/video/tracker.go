package video

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"github.com/blivingstone/go-looming/pkg/tracking"
)

// ErrTrackerInit is returned when the tracker rejects the initial box.
var ErrTrackerInit = errors.New("tracker initialization failed")

// KCF wraps OpenCV's KCF tracker over a Stream's current frame.
type KCF struct {
	trk    gocv.Tracker
	stream *Stream
}

// NewKCF creates a KCF tracker bound to the stream.
func NewKCF(stream *Stream) *KCF {
	return &KCF{
		trk:    contrib.NewTrackerKCF(),
		stream: stream,
	}
}

// Init locks the tracker onto the object inside box on the current frame.
func (k *KCF) Init(box tracking.Box) error {
	rect := image.Rect(box.X, box.Y, box.X+box.W, box.Y+box.H)
	if !k.trk.Init(k.stream.Frame(), rect) {
		return ErrTrackerInit
	}
	return nil
}

// Update advances the tracker over the current frame.
func (k *KCF) Update() (tracking.Box, bool) {
	rect, ok := k.trk.Update(k.stream.Frame())
	if !ok {
		return tracking.Box{}, false
	}
	return tracking.Box{
		X: rect.Min.X,
		Y: rect.Min.Y,
		W: rect.Dx(),
		H: rect.Dy(),
	}, true
}

// Close releases the tracker.
func (k *KCF) Close() error {
	return k.trk.Close()
}

// Ensure KCF satisfies the loop's tracker contract.
var _ tracking.Tracker = (*KCF)(nil)
