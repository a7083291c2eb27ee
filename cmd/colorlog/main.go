package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/colorlog/internal/config"
	"codeberg.org/mutker/colorlog/internal/device"
	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/logger"
	"codeberg.org/mutker/colorlog/internal/pid"
	"codeberg.org/mutker/colorlog/internal/session"
	"codeberg.org/mutker/colorlog/internal/telemetry"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1

	countdown = 3 * time.Second
)

// port is an open serial link as the logging run sees it.
type port interface {
	device.Source
	io.Closer
}

// app holds the collaborators of one run so they can be replaced in tests.
type app struct {
	lister     device.Lister
	open       func(path string) (port, error)
	out        io.Writer
	countdown  time.Duration
	resetDelay time.Duration
}

func newApp() *app {
	return &app{
		lister: device.EnumeratorLister{},
		open: func(path string) (port, error) {
			return device.Open(path)
		},
		out:        os.Stdout,
		countdown:  countdown,
		resetDelay: device.ResetDelay,
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Printf("failed to load config: %v\n", err)
		return exitError
	}

	logger.Init(cfg.IsDebug(), cfg.IsVerbose(), logger.IsService())
	if level, ok := logger.ParseLevel(cfg.GetLogLevel()); ok {
		logger.SetLogLevel(level)
	}
	logger.Debug().Str("log_level", cfg.GetLogLevel()).Str("output_dir", cfg.GetOutputDir()).Msg("Config loaded")

	lock := pid.Default()
	if err := lock.Write(); err != nil {
		logger.ErrorWithCode(coded(err, errors.ErrInternal)).Str("pid_file", lock.Path()).Msg("failed to acquire PID file")
		return exitError
	}
	defer func() {
		if err := lock.Remove(); err != nil {
			logger.Warn().Err(err).Msg("failed to remove PID file")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	return newApp().execute(ctx, cfg)
}

// execute locates the board and runs one logging session, returning the
// process exit code.
func (a *app) execute(ctx context.Context, cfg config.Provider) int {
	path, ports, err := device.Locate(a.lister)
	if err != nil {
		if !errors.HasCode(err, device.ErrPortNotFound) {
			logger.Error().Err(err).Msg("failed to enumerate serial ports")
		}
		session.PrintPortNotFound(a.out, ports)
		return exitError
	}

	return a.logColors(ctx, cfg, path)
}

func (a *app) logColors(ctx context.Context, cfg config.Provider, path string) int {
	errFactory := errors.New()

	store := telemetry.Config{
		Dir:       cfg.GetOutputDir(),
		StartedAt: time.Now(),
	}

	session.PrintIntro(a.out, path, store.FilePath(), a.countdown)
	if err := session.Wait(ctx, a.countdown); err != nil {
		return a.cancelled()
	}

	conn, err := a.open(path)
	if err != nil {
		session.PrintSerialError(a.out, err)
		logger.Debug().Err(err).Msg("failed to open serial port")
		return exitError
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close serial port")
		}
	}()

	// opening the port resets the board
	if err := session.Wait(ctx, a.resetDelay); err != nil {
		return a.cancelled()
	}

	recorder, err := telemetry.NewService(store)
	if err != nil {
		logger.ErrorWithCode(coded(err, telemetry.ErrStorageInit)).Msg("failed to create output file")
		return exitError
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close output file")
		}
	}()

	summary, err := session.Run(ctx, conn, recorder, a.out)
	if err != nil {
		loopErr := errFactory.Wrap(errors.ErrMainLoop, err)
		if errors.HasCode(err, session.ErrStorageFault) {
			logger.ErrorWithCode(loopErr).Str("path", summary.File).Msg("failed to write output file")
			return exitError
		}
		session.PrintSerialError(a.out, err)
		logger.Debug().Err(loopErr).Int("readings", summary.Readings).Msg("error in main loop")
		return exitError
	}

	session.PrintSummary(a.out, summary)
	return exitOK
}

func (a *app) cancelled() int {
	fmt.Fprintln(a.out, "\nLogging cancelled.")
	logger.Info().Msg("Cancelled before logging started")
	return exitOK
}

// coded returns err as a coded error, wrapping it with fallback when it
// carries no code of its own.
func coded(err error, fallback errors.ErrorCode) errors.Error {
	var ce errors.Error
	if errors.As(err, &ce) {
		return ce
	}
	return errors.New().Wrap(fallback, err)
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	// a second Ctrl+C falls through to the default handler
	signal.Stop(sigs)
	logger.Info().Msg("Received termination signal.")
	cancel()
}
