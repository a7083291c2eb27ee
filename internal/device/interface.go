package device

import "time"

// Fixed link parameters of the colour sensor sketch.
const (
	BaudRate    = 9600
	ReadTimeout = 1 * time.Second
	ResetDelay  = 2 * time.Second
)

// MatchSubstrings are the device path fragments used by USB CDC and
// USB-serial adapters (e.g. /dev/cu.usbmodem14101, /dev/tty.usbserial-110).
var MatchSubstrings = []string{"usbmodem", "usbserial"}

// PortInfo describes one serial port as reported by the OS.
type PortInfo struct {
	Path        string
	Description string
}

// Lister enumerates the serial ports visible to the system.
type Lister interface {
	List() ([]PortInfo, error)
}

// Source yields newline-terminated lines from a device. ReadLine returns an
// empty slice and nil error when the read timeout expires without a full line.
type Source interface {
	ReadLine() ([]byte, error)
}
