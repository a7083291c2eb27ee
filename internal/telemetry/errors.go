package telemetry

import "codeberg.org/mutker/colorlog/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDir    = errors.ErrorCode("telemetry_invalid_dir")

	// Collection Errors
	ErrInvalidRecord = errors.ErrorCode("telemetry_invalid_record")
	ErrRecordFailed  = errors.ErrorCode("telemetry_record_failed")

	// Storage Errors
	ErrStorageInit   = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageWrite  = errors.ErrorCode("telemetry_storage_write_failed")
	ErrStorageClose  = errors.ErrorCode("telemetry_storage_close_failed")
	ErrStorageClosed = errors.ErrorCode("telemetry_storage_closed")
)
