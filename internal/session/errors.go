package session

import "codeberg.org/mutker/colorlog/internal/errors"

const (
	ErrSerialFault  = errors.ErrorCode("session_serial_fault")
	ErrStorageFault = errors.ErrorCode("session_storage_fault")
	ErrCancelled    = errors.ErrCancelled
)
