package telemetry

import (
	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/logger"
)

type service struct {
	repo Repository
}

func NewService(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	return newService(repo), nil
}

func newService(repo Repository) *service {
	logger.Debug().
		Str("path", repo.Path()).
		Msg("Telemetry recorder initialized")

	return &service{
		repo: repo,
	}
}

// Record stores headers and readings alike. Malformed lines are stored too;
// parsing only decides what is shown on the console.
func (s *service) Record(rec *Record) error {
	errFactory := errors.New()

	if rec == nil || rec.Raw == "" {
		return errFactory.New(ErrInvalidRecord)
	}

	if err := s.repo.Store(rec.Raw); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (s *service) Path() string {
	return s.repo.Path()
}

func (s *service) Close() error {
	return s.repo.Close()
}
