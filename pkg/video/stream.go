// Package video adapts OpenCV (via gocv) to the tracking loop's collaborator
// interfaces: frame source, object tracker, region selection and the
// per-frame display/output-writer pair. Everything here is hardware- and
// codec-bound; the loop itself never imports gocv.
package video

import (
	"fmt"
	"strconv"
	"time"

	"gocv.io/x/gocv"
)

// Stream is a sequential frame source over a video file or capture device.
// It owns the current frame; trackers and displays operate on it in place.
type Stream struct {
	cap   *gocv.VideoCapture
	frame gocv.Mat
	index int
	fps   float64
}

// OpenStream opens a video source. A source that parses as an integer is
// treated as a capture device index, anything else as a file path.
func OpenStream(source string) (*Stream, error) {
	var (
		cap *gocv.VideoCapture
		err error
	)
	if idx, convErr := strconv.Atoi(source); convErr == nil {
		cap, err = gocv.OpenVideoCapture(idx)
	} else {
		cap, err = gocv.OpenVideoCapture(source)
	}
	if err != nil {
		return nil, fmt.Errorf("opening video source %q: %w", source, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("video source %q not opened", source)
	}

	return &Stream{
		cap:   cap,
		frame: gocv.NewMat(),
		fps:   cap.Get(gocv.VideoCaptureFPS),
	}, nil
}

// Next reads the next frame into the stream's buffer. It reports false when
// the source is exhausted or a read fails.
func (s *Stream) Next() bool {
	if !s.cap.Read(&s.frame) || s.frame.Empty() {
		return false
	}
	s.index++
	return true
}

// Frame returns the current frame. Valid until the next call to Next.
func (s *Stream) Frame() gocv.Mat {
	return s.frame
}

// Index returns the 1-based index of the current frame.
func (s *Stream) Index() int {
	return s.index
}

// FPS returns the source frame rate.
func (s *Stream) FPS() float64 {
	return s.fps
}

// Timestamp returns the current frame's time position derived from the
// source frame rate.
func (s *Stream) Timestamp() time.Duration {
	if s.fps <= 0 {
		return 0
	}
	return time.Duration(float64(s.index) / s.fps * float64(time.Second))
}

// Size returns the source frame dimensions.
func (s *Stream) Size() (width, height int) {
	return int(s.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(s.cap.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the capture handle and the frame buffer.
func (s *Stream) Close() error {
	s.frame.Close()
	return s.cap.Close()
}
