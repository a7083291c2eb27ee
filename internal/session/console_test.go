package session

import (
	"bytes"
	"testing"
	"time"

	"codeberg.org/mutker/colorlog/internal/device"
	"github.com/stretchr/testify/assert"
)

func TestPrintPortNotFound(t *testing.T) {
	var out bytes.Buffer
	PrintPortNotFound(&out, []device.PortInfo{
		{Path: "/dev/ttyS0", Description: "n/a"},
		{Path: "/dev/cu.Bluetooth-Incoming-Port", Description: "n/a"},
	})

	assert.Equal(t, "ERROR: Arduino not found!\n"+
		"Available ports:\n"+
		"  - /dev/ttyS0: n/a\n"+
		"  - /dev/cu.Bluetooth-Incoming-Port: n/a\n", out.String())
}

func TestPrintIntro(t *testing.T) {
	var out bytes.Buffer
	PrintIntro(&out, "/dev/cu.usbmodem14101", "color_data_20261017_143000.csv", 3*time.Second)

	s := out.String()
	assert.Contains(t, s, "Found Arduino at: /dev/cu.usbmodem14101\n")
	assert.Contains(t, s, "Logging to: color_data_20261017_143000.csv\n")
	assert.Contains(t, s, "3. Press Ctrl+C when done\n")
	assert.Contains(t, s, "Starting in 3 seconds...\n")
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	PrintSummary(&out, Summary{File: "color_data_20261017_143000.csv", Readings: 2})

	s := out.String()
	assert.Contains(t, s, "Logging stopped!\n")
	assert.Contains(t, s, "Data saved to: color_data_20261017_143000.csv\n")
	assert.Contains(t, s, "Total readings: 2\n")
	assert.Contains(t, s, doubleRule+"\n")
}
