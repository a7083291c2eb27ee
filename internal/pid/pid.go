// Package pid keeps a single colorlog instance per machine, so two runs do
// not compete for the same board.
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/colorlog/internal/errors"
)

const (
	pidFile        = "colorlog.pid"
	filePerm       = 0o600
	createAttempts = 2
)

// File is a PID file location.
type File struct {
	path string
}

// Default returns the PID file in the system temp directory.
func Default() File {
	return At(filepath.Join(os.TempDir(), pidFile))
}

// At returns a PID file at path.
func At(path string) File {
	return File{path: path}
}

// Path returns the PID file location.
func (f File) Path() string {
	return f.path
}

// Write creates the PID file exclusively and records the current process
// ID. A file left by a live process is refused; a stale one is removed and
// the create retried once.
func (f File) Write() error {
	errFactory := errors.New()

	for attempt := 0; attempt < createAttempts; attempt++ {
		file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
		if err == nil {
			_, werr := file.WriteString(strconv.Itoa(os.Getpid()))
			if cerr := file.Close(); werr == nil {
				werr = cerr
			}
			if werr != nil {
				_ = os.Remove(f.path)
				return errFactory.Wrap(errors.ErrInternal, werr)
			}
			return nil
		}
		if !os.IsExist(err) {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		data, err := os.ReadFile(f.path)
		if err != nil {
			if os.IsNotExist(err) {
				// removed between create and read
				continue
			}
			return errFactory.Wrap(errors.ErrInternal, err)
		}
		if running(strings.TrimSpace(string(data))) {
			return errFactory.WithData(errors.ErrAlreadyRunning, f.path)
		}
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return errFactory.Wrap(errors.ErrInternal, err)
		}
	}

	// lost the create race to another instance
	return errFactory.WithData(errors.ErrAlreadyRunning, f.path)
}

// Remove removes the PID file.
func (f File) Remove() error {
	errFactory := errors.New()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

func running(s string) bool {
	pid, err := strconv.Atoi(s)
	if err != nil || pid <= 0 {
		return false
	}
	if pid == os.Getpid() {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
