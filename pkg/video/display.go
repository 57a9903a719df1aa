package video

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/blivingstone/go-looming/pkg/region"
	"github.com/blivingstone/go-looming/pkg/tracking"
)

const escKey = 27

var (
	colorOutside = color.RGBA{G: 255} // green
	colorInside  = color.RGBA{B: 255} // blue
	colorRegion  = color.RGBA{G: 255} // green
)

// ErrEmptySelection is returned when the operator confirms an empty ROI.
var ErrEmptySelection = errors.New("empty region selected")

// Display shows each annotated frame in a window and mirrors it to an output
// video matching the source's frame rate and size. ESC in the window
// requests a session abort.
type Display struct {
	stream *Stream
	win    *gocv.Window
	writer *gocv.VideoWriter
	region image.Rectangle
	radius int
}

// NewDisplay opens the tracker window and the output video writer.
func NewDisplay(stream *Stream, outputPath string, triggerRegion region.Rect) (*Display, error) {
	width, height := stream.Size()
	writer, err := gocv.VideoWriterFile(outputPath, "mp4v", stream.FPS(), width, height, true)
	if err != nil {
		return nil, fmt.Errorf("creating video writer %q: %w", outputPath, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("video writer %q not opened", outputPath)
	}

	return &Display{
		stream: stream,
		win:    gocv.NewWindow("tracker"),
		writer: writer,
		region: image.Rect(
			int(triggerRegion.X),
			int(triggerRegion.Y),
			int(triggerRegion.X+triggerRegion.W),
			int(triggerRegion.Y+triggerRegion.H),
		),
		radius: 10,
	}, nil
}

// Render overlays the trigger region and, when tracked, the centroid colored
// by containment, then shows the frame and appends it to the output video.
// It reports quit=true when the operator pressed ESC.
func (d *Display) Render(centroid region.Point, tracked, inside bool) (bool, error) {
	frame := d.stream.Frame()

	gocv.Rectangle(&frame, d.region, colorRegion, 2)

	if tracked {
		c := colorOutside
		if inside {
			c = colorInside
		}
		gocv.Circle(&frame, image.Pt(int(centroid.X), int(centroid.Y)), d.radius, c, -1)
	}

	d.win.IMShow(frame)
	quit := d.win.WaitKey(1) == escKey

	if err := d.writer.Write(frame); err != nil {
		return quit, fmt.Errorf("writing output frame: %w", err)
	}
	return quit, nil
}

// Close releases the window and the output writer.
func (d *Display) Close() error {
	werr := d.writer.Close()
	if err := d.win.Close(); err != nil {
		return err
	}
	return werr
}

// Ensure Display satisfies the loop's renderer contract.
var _ tracking.Renderer = (*Display)(nil)

// SelectBox pops an interactive ROI selector over the stream's frames and
// returns the confirmed rectangle. It advances the stream until a non-empty
// selection is made or the source runs out.
func SelectBox(title string, stream *Stream) (tracking.Box, error) {
	win := gocv.NewWindow(title)
	defer win.Close()

	for stream.Next() {
		r := win.SelectROI(stream.Frame())
		if r.Empty() {
			continue
		}
		return tracking.Box{
			X: r.Min.X,
			Y: r.Min.Y,
			W: r.Dx(),
			H: r.Dy(),
		}, nil
	}
	return tracking.Box{}, ErrEmptySelection
}
