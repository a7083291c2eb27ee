package device

import "codeberg.org/mutker/colorlog/internal/errors"

const (
	// Discovery Errors
	ErrEnumerateFailed = errors.ErrorCode("device_enumerate_failed")
	ErrPortNotFound    = errors.ErrorCode("device_port_not_found")

	// Connection Errors
	ErrOpenFailed      = errors.ErrorCode("device_open_failed")
	ErrPortBusy        = errors.ErrResourceBusy
	ErrConfigureFailed = errors.ErrorCode("device_configure_failed")
	ErrNotOpen         = errors.ErrorCode("device_not_open")

	// I/O Errors
	ErrReadFailed  = errors.ErrorCode("device_read_failed")
	ErrCloseFailed = errors.ErrorCode("device_close_failed")
)
