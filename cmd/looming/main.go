// Command looming runs the auditory looming task: it tracks one object in a
// video stream and, whenever the object's centroid crosses into the trigger
// region, plays a rising-amplitude stimulus over the continuously looping
// background noise.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/blivingstone/go-looming/internal/config"
	"github.com/blivingstone/go-looming/internal/log"
	"github.com/blivingstone/go-looming/pkg/audioio"
	"github.com/blivingstone/go-looming/pkg/calibration"
	"github.com/blivingstone/go-looming/pkg/playback"
	"github.com/blivingstone/go-looming/pkg/record"
	"github.com/blivingstone/go-looming/pkg/region"
	"github.com/blivingstone/go-looming/pkg/tracking"
	"github.com/blivingstone/go-looming/pkg/video"
	"github.com/blivingstone/go-looming/pkg/wave"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML session config")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: looming [flags] <video source>")
		fmt.Println("examples:")
		fmt.Println("  looming recordings/session1.mp4")
		fmt.Println("  looming 0          # capture device index")
		flag.PrintDefaults()
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.LogLevel)
	logger := log.With("session", config.NewSessionID())

	if err := run(cfg, flag.Arg(0), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Finished tracking video")
}

func run(cfg config.Config, source string, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C ends the session the same way ESC does.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("interrupt received, ending session")
		cancel()
	}()

	stream, err := video.OpenStream(source)
	if err != nil {
		return err
	}
	defer stream.Close()
	logger.Info("video source opened", "source", source, "fps", stream.FPS())

	audioCfg := audioio.DefaultConfig()
	audioCfg.SampleRate = cfg.SampleRate
	audioCfg.PeriodFrames = cfg.PeriodFrames

	// Calibrate the minimum (background) and peak (stimulus) amplitudes
	// before anything else starts.
	minAmp, maxAmp, err := calibrate(ctx, cfg, audioCfg, logger)
	if err != nil {
		return err
	}

	background := wave.Background(minAmp, cfg.BackgroundSeconds, cfg.SampleRate)
	stimulus := wave.Looming(minAmp, maxAmp, cfg.SampleRate)

	// Operator supplies the tracked-object box, then the trigger region.
	objBox, err := video.SelectBox("tracker", stream)
	if err != nil {
		return err
	}
	trk := video.NewKCF(stream)
	defer trk.Close()
	if err := trk.Init(objBox); err != nil {
		return err
	}

	fmt.Println("Please select the trigger region")
	regBox, err := video.SelectBox("trigger", stream)
	if err != nil {
		return err
	}
	trigRegion := region.Rect{
		X: float64(regBox.X),
		Y: float64(regBox.Y),
		W: float64(regBox.W),
		H: float64(regBox.H),
	}

	display, err := video.NewDisplay(stream, cfg.OutputVideo, trigRegion)
	if err != nil {
		return err
	}
	defer display.Close()

	recorder, err := record.Open(cfg.OutputCSV)
	if err != nil {
		return err
	}
	defer recorder.Close()

	// Each audio worker gets its own exclusive device handle.
	bgSink, err := audioio.NewSink(audioCfg, logger)
	if err != nil {
		return err
	}
	stSink, err := audioio.NewSink(audioCfg, logger)
	if err != nil {
		bgSink.Close()
		return err
	}

	trigger := playback.NewTrigger()

	var wg sync.WaitGroup
	workerErrs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := playback.NewBackground(bgSink, background, logger).Run(ctx); err != nil {
			workerErrs <- err
		}
	}()
	go func() {
		defer wg.Done()
		if err := playback.NewStimulus(stSink, stimulus, trigger, logger).Run(ctx); err != nil {
			workerErrs <- err
		}
	}()

	loop := tracking.New(stream, trk, trigger,
		tracking.WithRecorder(recorder),
		tracking.WithRenderer(display),
		tracking.WithLogger(logger),
	)
	loop.SetTriggerRegion(trigRegion)
	loop.OnStop = cancel

	fmt.Println("Starting the tracking process, press ESC to quit.")
	stats, err := loop.Run(ctx)
	if err != nil {
		return err
	}

	// Cooperative shutdown: the loop raised the sticky end signal; give the
	// audio workers a bounded window to observe it and release their devices.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cfg.JoinTimeout.Std()):
		logger.Warn("audio workers missed shutdown deadline, exiting anyway",
			"timeout", cfg.JoinTimeout.Std())
	}

	for {
		select {
		case werr := <-workerErrs:
			logger.Error("audio worker failed", "error", werr)
			continue
		default:
		}
		break
	}

	logger.Info("session complete",
		"frames", stats.Frames,
		"tracked", stats.Tracked,
		"lost", stats.Lost,
		"triggers", stats.Triggers,
	)
	return nil
}

// calibrate runs the two pre-session amplitude loops on a dedicated device.
func calibrate(ctx context.Context, cfg config.Config, audioCfg audioio.Config, logger *slog.Logger) (minAmp, maxAmp float64, err error) {
	sink, err := audioio.NewSink(audioCfg, logger)
	if err != nil {
		return 0, 0, err
	}
	defer sink.Close()
	if err := sink.Start(ctx); err != nil {
		return 0, 0, err
	}

	cal := calibration.New(sink, os.Stdin, os.Stdout, cfg.CalibrateSeconds, logger)
	if minAmp, err = cal.Run(ctx, "background minimum", cfg.BaseAmplitude); err != nil {
		return 0, 0, err
	}
	if maxAmp, err = cal.Run(ctx, "stimulus peak", cfg.PeakAmplitude); err != nil {
		return 0, 0, err
	}
	return minAmp, maxAmp, nil
}
