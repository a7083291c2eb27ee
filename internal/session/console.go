package session

import (
	"fmt"
	"io"
	"strings"
	"time"

	"codeberg.org/mutker/colorlog/internal/device"
	"codeberg.org/mutker/colorlog/internal/errors"
)

const ruleWidth = 50

var (
	doubleRule = strings.Repeat("=", ruleWidth)
	singleRule = strings.Repeat("-", ruleWidth)
)

// PrintPortNotFound reports a failed lookup together with every port the
// OS listed.
func PrintPortNotFound(out io.Writer, ports []device.PortInfo) {
	fmt.Fprintln(out, "ERROR: Arduino not found!")
	fmt.Fprintln(out, "Available ports:")
	for _, p := range ports {
		fmt.Fprintf(out, "  - %s: %s\n", p.Path, p.Description)
	}
}

// PrintIntro shows the detected port, the output file and the operator
// instructions, ending with the countdown notice.
func PrintIntro(out io.Writer, port, file string, countdown time.Duration) {
	fmt.Fprintf(out, "Found Arduino at: %s\n", port)
	fmt.Fprintf(out, "Logging to: %s\n", file)
	fmt.Fprintln(out)
	fmt.Fprintln(out, doubleRule)
	fmt.Fprintln(out, "INSTRUCTIONS:")
	fmt.Fprintln(out, "1. Place sensor over each color for 5-10 seconds")
	fmt.Fprintln(out, "2. Move slowly between colors")
	fmt.Fprintln(out, "3. Press Ctrl+C when done")
	fmt.Fprintln(out, doubleRule)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Starting in %d seconds...\n", int(countdown/time.Second))
}

// PrintSummary is shown after an interrupted run.
func PrintSummary(out io.Writer, s Summary) {
	fmt.Fprint(out, "\n\n")
	fmt.Fprintln(out, doubleRule)
	fmt.Fprintln(out, "Logging stopped!")
	fmt.Fprintf(out, "Data saved to: %s\n", s.File)
	fmt.Fprintf(out, "Total readings: %d\n", s.Readings)
	fmt.Fprintln(out, doubleRule)
}

// PrintSerialError reports a fault that ends the run, showing the
// underlying OS or driver error rather than the wrapping chain.
func PrintSerialError(out io.Writer, err error) {
	fmt.Fprintf(out, "Serial error: %v\n", rootCause(err))
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func printTableHeader(out io.Writer) {
	fmt.Fprintln(out, "\nLogging started! Move sensor over colors...")
	fmt.Fprintln(out, singleRule)
	fmt.Fprintln(out, "Reading | Red   | Green | Blue")
	fmt.Fprintln(out, singleRule)
}
