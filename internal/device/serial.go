package device

import (
	"bytes"
	"io"

	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/logger"
	"go.bug.st/serial"
)

const (
	readChunk = 256
	// maxLineLen bounds the bytes held while waiting for a newline.
	maxLineLen = 4096
)

// Conn is an open serial link that splits the incoming byte stream into
// lines. It implements Source.
type Conn struct {
	port    io.ReadCloser
	chunk   []byte
	pending []byte
}

// Open opens path at BaudRate 8N1 with a ReadTimeout bounded read.
func Open(path string) (*Conn, error) {
	errFactory := errors.New()

	mode := &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(path, mode)
	if err != nil {
		var portErr *serial.PortError
		if errors.As(err, &portErr) && portErr.Code() == serial.PortBusy {
			return nil, errFactory.Wrap(ErrPortBusy, err)
		}
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}

	if err := p.SetReadTimeout(ReadTimeout); err != nil {
		_ = p.Close()
		return nil, errFactory.Wrap(ErrConfigureFailed, err)
	}

	logger.Debug().
		Str("path", path).
		Int("baud", BaudRate).
		Dur("read_timeout", ReadTimeout).
		Msg("Serial port opened")

	return newConn(p), nil
}

func newConn(port io.ReadCloser) *Conn {
	return &Conn{
		port:  port,
		chunk: make([]byte, readChunk),
	}
}

// ReadLine returns the next line including its trailing newline. When a read
// times out before a newline arrives it returns an empty slice and keeps the
// partial data for the next call. A line that grows past maxLineLen without
// a newline is returned in maxLineLen pieces.
func (c *Conn) ReadLine() ([]byte, error) {
	errFactory := errors.New()

	if c.port == nil {
		return nil, errFactory.New(ErrNotOpen)
	}

	for {
		window := c.pending
		if len(window) > maxLineLen {
			window = window[:maxLineLen]
		}
		if i := bytes.IndexByte(window, '\n'); i >= 0 {
			return c.take(i + 1), nil
		}
		if len(c.pending) >= maxLineLen {
			logger.Debug().Int("bytes", maxLineLen).Msg("Serial line exceeds limit, splitting")
			return c.take(maxLineLen), nil
		}

		n, err := c.port.Read(c.chunk)
		if n > 0 {
			c.pending = append(c.pending, c.chunk[:n]...)
		}
		if err != nil {
			return nil, errFactory.Wrap(ErrReadFailed, err)
		}
		if n == 0 {
			return []byte{}, nil
		}
	}
}

func (c *Conn) take(n int) []byte {
	line := make([]byte, n)
	copy(line, c.pending[:n])
	c.pending = c.pending[n:]
	return line
}

// Close releases the port. Calling Close twice is a no-op.
func (c *Conn) Close() error {
	errFactory := errors.New()

	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	if err != nil {
		return errFactory.Wrap(ErrCloseFailed, err)
	}
	return nil
}
