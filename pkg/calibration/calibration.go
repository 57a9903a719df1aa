// Package calibration runs the pre-session interactive amplitude loop: play a
// test buffer, ask the operator for a replacement amplitude, repeat until the
// input is not a usable number, then return the last confirmed value.
package calibration

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/blivingstone/go-looming/pkg/audioio"
	"github.com/blivingstone/go-looming/pkg/wave"
)

// Calibrator plays candidate amplitudes on a sink and reads replacements from
// the operator. It does not own the sink; the caller starts and closes it.
type Calibrator struct {
	sink    audioio.Sink
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	seconds float64
}

// New creates a calibrator reading operator input from in and prompting on out.
func New(sink audioio.Sink, in io.Reader, out io.Writer, seconds float64, logger *slog.Logger) *Calibrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calibrator{
		sink:    sink,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		seconds: seconds,
	}
}

// Run loops until the operator confirms: each pass synthesizes a test buffer
// at the candidate amplitude, plays it to completion, and prompts for a new
// value. A parseable number in [0,1] becomes the next candidate; anything
// else (empty line, EOF, junk, out of range) confirms the current candidate.
func (c *Calibrator) Run(ctx context.Context, label string, amplitude float64) (float64, error) {
	fmt.Fprintf(c.out, "Calibrating %s amplitude.\n", label)

	for {
		buf := wave.Background(amplitude, c.seconds, c.sink.Config().SampleRate)
		if err := c.sink.Write(ctx, buf); err != nil {
			return amplitude, fmt.Errorf("playing calibration tone: %w", err)
		}

		fmt.Fprintf(c.out, "Previous amplitude = %g\n", amplitude)
		fmt.Fprint(c.out, "Enter a new amplitude value (0-1), or press Enter to confirm: ")

		if !c.in.Scan() {
			break // EOF confirms
		}
		next, ok := parseAmplitude(c.in.Text())
		if !ok {
			break
		}
		amplitude = next
	}

	c.logger.Info("amplitude calibrated", "level", label, "amplitude", amplitude)
	return amplitude, c.in.Err()
}

// parseAmplitude reports whether s is a usable amplitude.
func parseAmplitude(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return 0, false
	}
	return v, true
}
