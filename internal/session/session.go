// Package session runs the read-persist-display loop for one logging run.
package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"codeberg.org/mutker/colorlog/internal/device"
	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/logger"
	"codeberg.org/mutker/colorlog/internal/telemetry"
)

// Summary is what a run reports when it ends.
type Summary struct {
	File     string
	Readings int
}

// Run reads lines from src until ctx is cancelled or a fault occurs. Every
// non-empty line goes to rec; parsed readings are also printed to out.
// Cancellation is checked between reads, so it takes effect within one
// read timeout. A cancelled run returns a nil error.
func Run(ctx context.Context, src device.Source, rec telemetry.Recorder, out io.Writer) (Summary, error) {
	errFactory := errors.New()
	summary := Summary{File: rec.Path()}

	printTableHeader(out)

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Int("readings", summary.Readings).Msg("Logging loop cancelled")
			return summary, nil
		default:
		}

		raw, err := src.ReadLine()
		if err != nil {
			return summary, errFactory.Wrap(ErrSerialFault, err)
		}

		line := telemetry.Decode(raw)
		if line == "" {
			continue
		}

		record := telemetry.Parse(line)
		if err := rec.Record(&record); err != nil {
			return summary, errFactory.Wrap(ErrStorageFault, err)
		}

		if record.Header {
			logger.Debug().Str("header", line).Msg("Header line stored")
			continue
		}

		rgb, ok := record.RGB()
		if !ok {
			logger.Debug().Str("line", line).Int("fields", len(record.Fields)).Msg("Stored unparsed line")
			continue
		}

		summary.Readings++
		printRow(out, summary.Readings, rgb)
	}
}

// Wait sleeps for d or until ctx is cancelled, whichever comes first.
func Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return errors.New().Wrap(ErrCancelled, ctx.Err())
	case <-t.C:
		return nil
	}
}

func printRow(out io.Writer, n int, rgb telemetry.RGB) {
	fmt.Fprintf(out, "%7d | %-5s | %-5s | %-5s\n", n, rgb.Red, rgb.Green, rgb.Blue)
}
