package telemetry

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/logger"
)

type csvRepository struct {
	path string
	file *os.File
	w    *bufio.Writer
	mu   sync.Mutex
}

// NewRepository creates (or truncates) the run's CSV file.
func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.Dir == "" {
		return nil, errFactory.New(ErrInvalidDir)
	}

	if err := os.MkdirAll(cfg.Dir, defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.Dir,
			Error: err.Error(),
		})
	}

	path := cfg.FilePath()
	logger.Debug().Msgf("Initializing telemetry repository at: %s", path)

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFilePerm)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &csvRepository{
		path: path,
		file: file,
		w:    bufio.NewWriter(file),
	}, nil
}

// Store writes line plus a newline and flushes, so a crash never loses a
// line that was already received.
func (r *csvRepository) Store(line string) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return errFactory.New(ErrStorageClosed)
	}

	if _, err := r.w.WriteString(line); err != nil {
		return errFactory.Wrap(ErrStorageWrite, err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return errFactory.Wrap(ErrStorageWrite, err)
	}
	if err := r.w.Flush(); err != nil {
		return errFactory.Wrap(ErrStorageWrite, err)
	}

	return nil
}

func (r *csvRepository) Path() string {
	return r.path
}

func (r *csvRepository) Close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}

	flushErr := r.w.Flush()
	closeErr := r.file.Close()
	r.file = nil

	if flushErr != nil {
		return errFactory.Wrap(ErrStorageClose, flushErr)
	}
	if closeErr != nil {
		return errFactory.Wrap(ErrStorageClose, closeErr)
	}
	return nil
}
