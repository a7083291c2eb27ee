package telemetry

import (
	"path/filepath"
	"time"

	"codeberg.org/mutker/colorlog/internal/errors"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644

	fileTimeLayout = "20060102_150405"
	filePrefix     = "color_data_"
	fileExt        = ".csv"
)

type Config struct {
	Dir       string
	StartedAt time.Time
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.Dir == "" {
		return errFactory.New(ErrInvalidDir)
	}
	return nil
}

// FilePath is Dir joined with FileName(StartedAt), or the current time when
// StartedAt is unset.
func (c Config) FilePath() string {
	started := c.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	return filepath.Join(c.Dir, FileName(started))
}

// FileName returns color_data_<YYYYMMDD>_<HHMMSS>.csv for t.
func FileName(t time.Time) string {
	return filePrefix + t.Format(fileTimeLayout) + fileExt
}
