package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"backglow/internal/api"
	"backglow/internal/capture"
	"backglow/internal/compose"
	"backglow/internal/extract"
	"backglow/internal/pipeline"
	"backglow/internal/rdisplay"
	"backglow/internal/sink"
	"backglow/internal/store"
	"backglow/internal/zones"
)

const (
	httpDefaultPort   = "9000"
	defaultCaptureFps = 24
	defaultTickFps    = 20
)

func main() {

	httpPort := flag.String("http.port", httpDefaultPort, "control API listen port")
	zonesPath := flag.String("zones", "zones.yaml", "zone config file (YAML or Prismatik profile)")
	captureFps := flag.Int("capture.fps", defaultCaptureFps, "per-monitor capture rate, 0 = unlimited")
	tickFps := flag.Int("tick.fps", defaultTickFps, "processing loop rate, 0 = unlimited")
	wledAddr := flag.String("sink.wled", "", "WLED node address (host[:port])")
	serialDev := flag.String("sink.serial", "", "serial device of the Arduino sink")
	startPaused := flag.Bool("paused", false, "start with the pipeline deactivated")
	dumpDir := flag.String("debug.dump-dir", "", "write canvas thumbnails to this directory")
	dumpEvery := flag.Int("debug.dump-every", 120, "dump every Nth tick")
	logFile := flag.String("log.file", "", "also write logs to this file")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var display rdisplay.Service
	display, err = rdisplay.NewProvider()
	if err != nil {
		logger.Fatal("can't init display service", zap.Error(err))
	}
	screens, err := display.Screens()
	if err != nil {
		logger.Fatal("can't enumerate displays", zap.Error(err))
	}

	zoneList, err := zones.Load(*zonesPath)
	if err != nil {
		logger.Fatal("can't load zone config", zap.String("path", *zonesPath), zap.Error(err))
	}

	out, err := selectSink(*wledAddr, *serialDev, logger)
	if err != nil {
		logger.Fatal("can't init LED sink", zap.Error(err))
	}
	defer out.Close()

	frames := store.New()
	sessions := capture.StartAll(display, screens, frames, *captureFps, logger.Named("capture"))
	logger.Info("capture started",
		zap.Int("monitors", len(screens)),
		zap.Int("sessions", len(sessions)),
		zap.Int("zones", len(zoneList)))

	compositor := compose.New(screens, logger.Named("compose"))
	extractor := extract.New(zoneList, compositor.Origin())
	gate := pipeline.NewGate(!*startPaused)
	loop := pipeline.NewLoop(frames, compositor, extractor, out, gate, *tickFps, logger.Named("pipeline"))
	if *dumpDir != "" {
		loop.SetDumper(pipeline.NewCanvasDumper(*dumpDir, *dumpEvery, logger.Named("dump")))
	}

	stop := make(chan struct{})
	go loop.Run(stop)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", api.MakeHandler(gate, frames, screens, logger.Named("api"))))

	errs := make(chan error, 2)
	go func() {
		logger.Info("control API listening", zap.String("port", *httpPort))
		errs <- http.ListenAndServe(fmt.Sprintf(":%s", *httpPort), mux)
	}()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		errs <- fmt.Errorf("received %v signal", <-interrupt)
	}()

	err = <-errs
	close(stop)
	for _, s := range sessions {
		s.Stop()
	}
	logger.Info("exiting", zap.Error(err))
}

func newLogger(verbose bool, file string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if file != "" {
		config.OutputPaths = append(config.OutputPaths, file)
	}
	return config.Build()
}

func selectSink(wledAddr, serialDev string, logger *zap.Logger) (sink.Sink, error) {
	switch {
	case wledAddr != "" && serialDev != "":
		return nil, errors.New("choose one of -sink.wled and -sink.serial")
	case wledAddr != "":
		return sink.NewWLED(wledAddr)
	case serialDev != "":
		return sink.NewSerial(serialDev)
	default:
		logger.Info("no LED sink configured, logging dispatches instead")
		return sink.NewLog(logger.Named("sink")), nil
	}
}
